package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
	"github.com/diillson/aws-cost-explorer-go/internal/domain/repository"
)

// Cost Explorer é uma API global servida a partir de us-east-1.
const costExplorerRegion = "us-east-1"

// costExplorerAPI is the subset of the Cost Explorer client used by the repository.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// stsAPI is the subset of the STS client used by the repository.
type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// CostRepositoryImpl implementa o CostRepository com cache de configuração.
type CostRepositoryImpl struct {
	mu       sync.Mutex
	cfgCache map[string]aws.Config

	newCostExplorer func(aws.Config) costExplorerAPI
	newSTS          func(aws.Config) stsAPI
}

// NewCostRepository cria uma nova implementação do CostRepository.
func NewCostRepository() repository.CostRepository {
	return &CostRepositoryImpl{
		cfgCache: make(map[string]aws.Config),
		newCostExplorer: func(cfg aws.Config) costExplorerAPI {
			return costexplorer.NewFromConfig(cfg)
		},
		newSTS: func(cfg aws.Config) stsAPI {
			return sts.NewFromConfig(cfg)
		},
	}
}

func (r *CostRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

// GetAWSProfiles lista os perfis encontrados em ~/.aws/credentials e ~/.aws/config.
func (r *CostRepositoryImpl) GetAWSProfiles() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"default"}
	}

	credentialsPath := filepath.Join(homeDir, ".aws", "credentials")
	configPath := filepath.Join(homeDir, ".aws", "config")

	profiles := make(map[string]bool)
	profileRegex := regexp.MustCompile(`\[([^]]+)\]`)

	parseFile := func(path string, isConfig bool) {
		content, err := os.ReadFile(path)
		if err != nil {
			return
		}
		matches := profileRegex.FindAllStringSubmatch(string(content), -1)
		for _, match := range matches {
			profileName := match[1]
			if isConfig {
				profileName = strings.TrimPrefix(profileName, "profile ")
			}
			profiles[profileName] = true
		}
	}

	parseFile(credentialsPath, false)
	parseFile(configPath, true)

	if len(profiles) == 0 {
		profiles["default"] = true
	}

	result := make([]string, 0, len(profiles))
	for profile := range profiles {
		result = append(result, profile)
	}
	sort.Strings(result)
	return result
}

// GetAccountID resolve o ID da conta via STS GetCallerIdentity.
func (r *CostRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return "", err
	}

	result, err := r.newSTS(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetCostRecords busca custos diários (UnblendedCost) agrupados por serviço e
// usage type, e os achata em registros individuais. Registros com custo abaixo
// de um centavo são descartados já na origem.
func (r *CostRepositoryImpl) GetCostRecords(ctx context.Context, profile string, start, end time.Time, tags []string) ([]entity.CostRecord, error) {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	regionalCfg.Region = costExplorerRegion
	client := r.newCostExplorer(regionalCfg)

	filter, err := parseTagFilter(tags)
	if err != nil {
		return nil, err
	}

	return r.getCostRecordsWithClient(ctx, client, start, end, filter)
}

func (r *CostRepositoryImpl) getCostRecordsWithClient(ctx context.Context, client costExplorerAPI, start, end time.Time, filter *ceTypes.Expression) ([]entity.CostRecord, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("USAGE_TYPE")},
		},
		Filter: filter,
	}

	var records []entity.CostRecord
	for {
		result, err := client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get cost and usage: %w", err)
		}

		records = append(records, recordsFromOutput(result)...)

		if result.NextPageToken == nil {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return records, nil
}

// recordsFromOutput achata os grupos de uma página de resultados em CostRecords.
func recordsFromOutput(result *costexplorer.GetCostAndUsageOutput) []entity.CostRecord {
	var records []entity.CostRecord

	for _, day := range result.ResultsByTime {
		if day.TimePeriod == nil {
			continue
		}
		date := aws.ToString(day.TimePeriod.Start)

		for _, group := range day.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			service := group.Keys[0]
			usageType := "N/A"
			if len(group.Keys) > 1 {
				usageType = group.Keys[1]
			}

			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil {
				continue
			}
			cost, err := strconv.ParseFloat(*metric.Amount, 64)
			if err != nil {
				continue
			}
			if cost <= entity.CostThreshold {
				continue
			}

			records = append(records, entity.CostRecord{
				Date:      date,
				Service:   service,
				UsageType: usageType,
				Cost:      cost,
			})
		}
	}

	return records
}

// parseTagFilter converte filtros "Key=Value" em uma expressão do Cost Explorer.
func parseTagFilter(tags []string) (*ceTypes.Expression, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	var expressions []ceTypes.Expression
	for _, t := range tags {
		parts := strings.SplitN(t, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid tag format: %s", t)
		}
		expressions = append(expressions, ceTypes.Expression{
			Tags: &ceTypes.TagValues{
				Key:    aws.String(parts[0]),
				Values: []string{parts[1]},
			},
		})
	}

	if len(expressions) == 1 {
		return &expressions[0], nil
	}

	return &ceTypes.Expression{And: expressions}, nil
}
