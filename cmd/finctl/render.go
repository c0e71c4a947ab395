package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"

	"github.com/LipezJ/eco-hogar/internal/services"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// Round-trip through JSON so keys match the API field names.
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	case "debug":
		printer := pp.New()
		printer.SetOutput(w)
		printer.SetColoringEnabled(false)
		_, err := printer.Println(v)
		return err
	case "table", "":
		return renderTable(w, v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func toGeneric(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func renderTable(w io.Writer, v interface{}) error {
	switch q := v.(type) {
	case *services.AmortizationQuote:
		header := fmt.Sprintf("%4s  %-10s  %14s  %14s  %14s", "#", "Due", "Payment", "Principal", "Interest")
		fmt.Fprintln(w, headerStyle.Render(header))
		fmt.Fprintln(w, strings.Repeat("-", len(header)))
		for _, p := range q.Payments {
			fmt.Fprintf(w, "%4d  %-10s  %14.2f  %14.2f  %14.2f\n",
				p.InstallmentNumber, p.DueDate.Format(dateLayout), p.Amount, p.Principal, p.Interest)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("Monthly payment: %.2f", q.MonthlyPayment)))
		fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("Total paid:      %.2f", q.TotalPaid)))
		fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("Total interest:  %.2f", q.TotalInterest)))
	case *services.DepositQuote:
		rows := [][2]string{
			{"Initial amount", fmt.Sprintf("%.2f", q.InitialAmount)},
			{"Interest rate", fmt.Sprintf("%.2f%%", q.InterestRate)},
			{"Term", fmt.Sprintf("%d days", q.Term)},
			{"Opening date", q.OpeningDate.Format(dateLayout)},
			{"Due date", q.DueDate.Format(dateLayout)},
			{"Final amount", fmt.Sprintf("%.2f", q.FinalAmount)},
			{"Interest earned", fmt.Sprintf("%.2f", q.InterestEarned)},
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%s %s\n", headerStyle.Render(fmt.Sprintf("%-16s", r[0])), r[1])
		}
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	return nil
}
