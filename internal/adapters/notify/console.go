package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/exilebot/internal/domain"
	"github.com/alejandrodnm/exilebot/internal/ports"
)

// Console implementa ports.Notifier escribiendo el dashboard a stdout.
type Console struct {
	out   io.Writer
	table bool // true = dashboard completo; false = resumen de 1 línea
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime el report en el modo configurado.
func (c *Console) Notify(_ context.Context, report domain.Report) error {
	if len(report.Results) == 0 {
		fmt.Fprintf(c.out, "[%s] %s: no profitable strategies found\n",
			report.GeneratedAt.Format("15:04:05"), report.League)
		return nil
	}

	if c.table {
		c.printDashboard(report)
		c.printTopBreakdown(report)
	} else {
		c.printCompact(report)
	}
	return nil
}

// printCompact imprime lo esencial en una línea: conteo y el mejor resultado.
func (c *Console) printCompact(report domain.Report) {
	top := report.Results[0]
	fmt.Fprintf(c.out, "[%s] %s: %d results | top: %s %s profit/flip %s risk %s\n",
		report.GeneratedAt.Format("15:04:05"),
		report.League,
		len(report.Results),
		top.StrategyName,
		truncate(top.ItemOrCombo, 30),
		domain.FormatChaos(top.ProfitPerFlip, report.DivineRate),
		top.Risk,
	)
}

// printDashboard imprime la tabla maestra de estrategias.
func (c *Console) printDashboard(report domain.Report) {
	fmt.Fprintf(c.out, "\n[%s] MASTER STRATEGY DASHBOARD — %s (%d results, 1 div = %s)\n",
		report.GeneratedAt.Format("15:04:05"), report.League, len(report.Results),
		domain.FormatChaos(report.DivineRate, 0))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Strategy", "Item / Combo", "Cost", "Profit/Flip", "Profit/Hour", "StdDev", "Risk", "Liq")

	for i, r := range report.Results {
		table.Append(
			fmt.Sprintf("%d", i+1),
			r.StrategyName,
			truncate(r.ItemOrCombo, 40),
			formatOptChaos(r.InputCost, report.DivineRate),
			domain.FormatChaos(r.ProfitPerFlip, report.DivineRate),
			formatOptChaos(r.ProfitPerHour, report.DivineRate),
			formatOptChaos(r.ProfitStdDev, report.DivineRate),
			r.Risk.String(),
			formatLiquidity(r.LiquidityScore),
		)
	}
	table.Render()

	fmt.Fprintln(c.out, "  Profit/Hour vacío = inversión a largo plazo | Liq = cheapest/mean del pool")
}

// printTopBreakdown imprime el desglose del mejor resultado: detalles,
// shopping list y trade URL.
func (c *Console) printTopBreakdown(report domain.Report) {
	top := report.Results[0]

	fmt.Fprintf(c.out, "\n--- Top Strategy Breakdown: %s ---\n", top.ItemOrCombo)
	for _, d := range top.Details {
		fmt.Fprintf(c.out, "  - %s: %s\n", d.Label, formatDetail(d, report.DivineRate))
	}
	if len(top.ShoppingList) > 0 {
		fmt.Fprintf(c.out, "  Shopping list (%d): %s\n",
			len(top.ShoppingList), truncate(strings.Join(top.ShoppingList, ", "), 100))
	}
	if top.TradeURL != "" {
		fmt.Fprintf(c.out, "  Trade URL: %s\n", top.TradeURL)
	}
}

// PrintHistory imprime la tendencia histórica de una estrategia: las últimas
// maxRows observaciones persistidas.
func (c *Console) PrintHistory(strategyName, league string, points []ports.HistoryPoint, divineRate float64, maxRows int) {
	fmt.Fprintf(c.out, "\nHISTORICAL TREND: %s (%s)\n", strategyName, league)

	if len(points) == 0 {
		fmt.Fprintln(c.out, "  No historical data found for this strategy yet.")
		return
	}
	if maxRows > 0 && len(points) > maxRows {
		points = points[len(points)-maxRows:]
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Timestamp", "Item / Combo", "Profit/Flip", "Profit/Hour", "Risk", "Liq")
	for _, p := range points {
		table.Append(
			p.Timestamp.Format(time.DateTime),
			truncate(p.ItemOrCombo, 40),
			domain.FormatChaos(p.ProfitPerFlip, divineRate),
			formatOptChaos(p.ProfitPerHour, divineRate),
			p.Risk.String(),
			formatLiquidity(p.LiquidityScore),
		)
	}
	table.Render()
}

// formatOptChaos formatea un valor opcional en chaos; nil = "N/A".
func formatOptChaos(v *float64, divineRate float64) string {
	if v == nil {
		return "N/A"
	}
	return domain.FormatChaos(*v, divineRate)
}

// formatLiquidity formatea el score de liquidez como porcentaje; nil = "N/A".
func formatLiquidity(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}

// formatDetail formatea un detalle: los conteos van sin unidad, el resto en chaos.
func formatDetail(d domain.Detail, divineRate float64) string {
	if d.Label == "Pool Size" {
		return fmt.Sprintf("%.0f", d.Chaos)
	}
	return domain.FormatChaos(d.Chaos, divineRate)
}

// truncate recorta un string a maxLen caracteres con elipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
