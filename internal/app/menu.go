package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"gradecli/internal/alerts"
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// ANSI escape codes for menu accents.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[91m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiBlue   = "\033[94m"
	ansiCyan   = "\033[96m"
)

// readLine writes the prompt and reads one trimmed input line. The second
// return is false when input is exhausted, which ends the session.
func (a *Application) readLine(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *Application) colorln(color, text string) {
	fmt.Fprintln(a.out, color+text+ansiReset)
}

func (a *Application) mainMenu(ctx context.Context) {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiCyan, "=== STUDENT ANALYTICS MAIN MENU ===")
		fmt.Fprintln(a.out)
		a.colorln(ansiGreen, "[1] Track-level analysis")
		a.colorln(ansiGreen, "[2] Cohort-level analysis")
		a.colorln(ansiGreen, "[3] IncomeStudent analysis")
		a.colorln(ansiGreen, "[4] Export dashboard report")
		a.colorln(ansiGreen, "[5] Performance alerts")
		a.colorln(ansiRed, "[0] Quit")

		choice, ok := a.readLine("\nEnter your choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.trackMenu()
		case "2":
			a.cohortMenu()
		case "3":
			a.incomeMenu()
		case "4":
			a.exportMenu(ctx)
		case "5":
			a.alertsMenu()
		case "0":
			fmt.Fprintln(a.out, "Goodbye!")
			return
		default:
			a.colorln(ansiRed, config.MsgInvalidChoice)
		}
	}
}

func (a *Application) trackMenu() {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiBlue, "--- TRACK ANALYSIS ---")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "[1] Show full track statistics")
		fmt.Fprintln(a.out, "[2] Compare Math between tracks")
		fmt.Fprintln(a.out, "[3] Show Attendance vs Project correlation by track")
		fmt.Fprintln(a.out, "[4] Show History distributions")
		fmt.Fprintln(a.out, "[0] Back to main menu")

		choice, ok := a.readLine("\nChoice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.printGroupTable(domain.ColumnTrack, a.bundle.Track)
		case "2":
			a.printMathComparison()
		case "3":
			a.printCorrelation()
		case "4":
			a.printHistory()
		case "0":
			return
		default:
			fmt.Fprintln(a.out, config.MsgInvalidChoice)
		}
	}
}

func (a *Application) cohortMenu() {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiBlue, "--- COHORT ANALYSIS ---")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "[1] Show cohort statistics")
		fmt.Fprintln(a.out, "[2] Show cohort pass rates only")
		fmt.Fprintln(a.out, "[0] Back to main menu")

		choice, ok := a.readLine("\nChoice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.printGroupTable(domain.ColumnCohort, a.bundle.Cohort)
		case "2":
			a.printPassRates(domain.ColumnCohort, a.bundle.Cohort)
		case "0":
			return
		default:
			fmt.Fprintln(a.out, config.MsgInvalidChoice)
		}
	}
}

func (a *Application) incomeMenu() {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiBlue, "--- INCOME STUDENT ANALYSIS ---")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "[1] Show Income vs Non-Income statistics")
		fmt.Fprintln(a.out, "[2] Show pass rates only")
		fmt.Fprintln(a.out, "[0] Back to main menu")

		choice, ok := a.readLine("\nChoice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.printGroupTable(domain.ColumnIncomeStudent, a.bundle.Income)
		case "2":
			a.printPassRates(domain.ColumnIncomeStudent, a.bundle.Income)
		case "0":
			return
		default:
			fmt.Fprintln(a.out, config.MsgInvalidChoice)
		}
	}
}

func (a *Application) exportMenu(ctx context.Context) {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiBlue, "--- EXPORT DASHBOARD ---")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "[1] Export basic Excel summary")
		fmt.Fprintln(a.out, "[0] Back to main menu")

		choice, ok := a.readLine("\nChoice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.runExport(ctx)
		case "0":
			return
		default:
			fmt.Fprintln(a.out, config.MsgInvalidChoice)
		}
	}
}

func (a *Application) alertsMenu() {
	for {
		fmt.Fprintln(a.out)
		a.colorln(ansiBold+ansiBlue, "--- PERFORMANCE ALERTS ---")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "[1] Show track alerts")
		fmt.Fprintln(a.out, "[2] Show cohort alerts")
		fmt.Fprintln(a.out, "[0] Back to main menu")

		choice, ok := a.readLine("\nChoice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.showAlerts("track")
		case "2":
			a.showAlerts("cohort")
		case "0":
			return
		default:
			fmt.Fprintln(a.out, config.MsgInvalidChoice)
		}
	}
}

// runExport writes both dashboard artifacts and echoes their paths.
func (a *Application) runExport(ctx context.Context) {
	result, err := a.Exporter.ExportAll(ctx, a.records, a.bundle)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
		a.colorln(ansiRed, fmt.Sprintf("Export failed: %v", err))
		return
	}

	fmt.Fprintf(a.out, "Cleaned dataset exported to: %s\n", result.DatasetPath)
	fmt.Fprintf(a.out, "Statistics exported to: %s\n", result.WorkbookPath)
	fmt.Fprintln(a.out, "\nAll outputs exported successfully!")
}

// showAlerts renders threshold breaches for the requested grouping mode.
func (a *Application) showAlerts(mode string) {
	fmt.Fprintln(a.out)
	a.colorln(ansiBold+ansiRed, "=== PERFORMANCE ALERTS ===")
	fmt.Fprintln(a.out)

	var found []alerts.Alert
	switch mode {
	case "track":
		found = a.Alerts.Evaluate("Track", a.bundle.Track)
	case "cohort":
		found = a.Alerts.Evaluate("Cohort", a.bundle.Cohort)
	default:
		a.colorln(ansiYellow, config.MsgInvalidMode)
		return
	}

	for _, alert := range found {
		a.colorln(ansiRed, "⚠️ ALERT: "+alert.Message)
	}

	fmt.Fprintln(a.out, "\nDone.")
}

// printGroupTable renders one grouped view with the same columns as the
// exported workbook sheets.
func (a *Application) printGroupTable(keyHeader string, groups []domain.GroupSummary) {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		keyHeader, "Students", "MathAvg", "EnglishAvg", "ScienceAvg",
		"HistoryAvg", "AttendanceAvg", "ProjectAvg", "PassRate",
	}, "\t"))
	for _, group := range groups {
		fmt.Fprintln(w, strings.Join([]string{
			group.Key,
			strconv.Itoa(group.Students),
			cellFloat(group.MathAvg),
			cellFloat(group.EnglishAvg),
			cellFloat(group.ScienceAvg),
			cellFloat(group.HistoryAvg),
			cellFloat(group.AttendanceAvg),
			cellFloat(group.ProjectAvg),
			cellFloat(group.PassRate),
		}, "\t"))
	}
	w.Flush()
}

func (a *Application) printPassRates(keyHeader string, groups []domain.GroupSummary) {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, keyHeader+"\tPassRate")
	for _, group := range groups {
		fmt.Fprintln(w, group.Key+"\t"+cellFloat(group.PassRate))
	}
	w.Flush()
}

func (a *Application) printMathComparison() {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, domain.ColumnTrack+"\tMathAvg")
	for _, mean := range a.bundle.MathComparison {
		fmt.Fprintln(w, mean.Track+"\t"+cellFloat(mean.MathAvg))
	}
	w.Flush()
}

func (a *Application) printCorrelation() {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, domain.ColumnTrack+"\tPairs\tCorrelation")
	for _, corr := range a.bundle.AttendanceProjectCorr {
		fmt.Fprintln(w, corr.Track+"\t"+strconv.Itoa(corr.Pairs)+"\t"+cellFloat(corr.Coefficient))
	}
	w.Flush()
}

func (a *Application) printHistory() {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, domain.ColumnTrack+"\tHistory")
	for _, series := range a.bundle.HistoryByTrack {
		fmt.Fprintln(w, series.Track+"\t"+cellSeries(series.Values))
	}
	w.Flush()
}

// cellFloat renders a nullable value for terminal tables, with "-" marking
// missing data.
func cellFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func cellSeries(values []*float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = cellFloat(v)
	}
	return strings.Join(parts, ", ")
}
