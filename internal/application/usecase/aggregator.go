package usecase

import (
	"sort"

	"github.com/diillson/aws-cost-explorer-go/internal/domain/entity"
)

// AggregateCostRecords agrega registros achatados do Cost Explorer em um
// Report: custo total, subtotais por serviço (com percentual), subtotais por
// usage type dentro de cada serviço e custos por dia. Função pura: não muta a
// entrada e produz o mesmo Report para a mesma sequência de registros.
//
// O corte de um centavo (entity.CostThreshold) é reaplicado em cada nível de
// agrupamento, já que cada re-soma pode reintroduzir totais abaixo do corte.
func AggregateCostRecords(records []entity.CostRecord) entity.Report {
	retained := make([]entity.CostRecord, 0, len(records))
	for _, rec := range records {
		if rec.Cost > entity.CostThreshold {
			retained = append(retained, rec)
		}
	}

	var report entity.Report

	serviceTotals := make(map[string]float64)
	serviceOrder := []string{}
	for _, rec := range retained {
		if _, seen := serviceTotals[rec.Service]; !seen {
			serviceOrder = append(serviceOrder, rec.Service)
		}
		serviceTotals[rec.Service] += rec.Cost
	}

	services := make([]string, 0, len(serviceOrder))
	for _, name := range serviceOrder {
		if serviceTotals[name] > entity.CostThreshold {
			services = append(services, name)
		}
	}
	// Ordenação estável sobre a ordem de chegada: empates ficam determinísticos.
	sort.SliceStable(services, func(i, j int) bool {
		return serviceTotals[services[i]] > serviceTotals[services[j]]
	})

	for _, name := range services {
		report.TotalCost += serviceTotals[name]
	}

	for _, name := range services {
		summary := entity.ServiceSummary{
			Name:       name,
			Cost:       serviceTotals[name],
			UsageTypes: usageTypesForService(retained, name),
		}
		// TotalCost zerado com serviços sobreviventes não ocorre com o corte
		// atual, mas o percentual fica definido como 0 em vez de dividir por zero.
		if report.TotalCost > 0 {
			summary.Percentage = summary.Cost / report.TotalCost * 100
		}
		report.Services = append(report.Services, summary)
	}

	report.DailyCosts = dailySummaries(retained)

	return report
}

// usageTypesForService soma os custos de um serviço por usage type,
// descartando totais abaixo do corte, em ordem decrescente de custo.
func usageTypesForService(records []entity.CostRecord, service string) []entity.UsageTypeCost {
	totals := make(map[string]float64)
	order := []string{}
	for _, rec := range records {
		if rec.Service != service {
			continue
		}
		if _, seen := totals[rec.UsageType]; !seen {
			order = append(order, rec.UsageType)
		}
		totals[rec.UsageType] += rec.Cost
	}

	kept := make([]string, 0, len(order))
	for _, name := range order {
		if totals[name] > entity.CostThreshold {
			kept = append(kept, name)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return totals[kept[i]] > totals[kept[j]]
	})

	usageTypes := make([]entity.UsageTypeCost, 0, len(kept))
	for _, name := range kept {
		usageTypes = append(usageTypes, entity.UsageTypeCost{Name: name, Cost: totals[name]})
	}
	return usageTypes
}

// dailySummaries soma os custos por (dia, serviço) e agrupa por dia em ordem
// crescente de data; dentro de um dia os serviços saem por custo decrescente.
func dailySummaries(records []entity.CostRecord) []entity.DailySummary {
	type dayService struct {
		date    string
		service string
	}

	totals := make(map[dayService]float64)
	servicesByDate := make(map[string][]string)
	dates := []string{}

	for _, rec := range records {
		key := dayService{date: rec.Date, service: rec.Service}
		if _, seen := totals[key]; !seen {
			if _, dateSeen := servicesByDate[rec.Date]; !dateSeen {
				dates = append(dates, rec.Date)
			}
			servicesByDate[rec.Date] = append(servicesByDate[rec.Date], rec.Service)
		}
		totals[key] += rec.Cost
	}

	// Datas ISO ordenam corretamente como strings.
	sort.Strings(dates)

	var summaries []entity.DailySummary
	for _, date := range dates {
		kept := make([]string, 0, len(servicesByDate[date]))
		for _, service := range servicesByDate[date] {
			if totals[dayService{date: date, service: service}] > entity.CostThreshold {
				kept = append(kept, service)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return totals[dayService{date: date, service: kept[i]}] > totals[dayService{date: date, service: kept[j]}]
		})

		day := entity.DailySummary{Date: date}
		for _, service := range kept {
			day.Services = append(day.Services, entity.DailyServiceCost{
				Name: service,
				Cost: totals[dayService{date: date, service: service}],
			})
		}
		summaries = append(summaries, day)
	}

	return summaries
}
