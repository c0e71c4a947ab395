package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/LipezJ/eco-hogar/internal/app"
	"github.com/LipezJ/eco-hogar/internal/config"
	"github.com/LipezJ/eco-hogar/internal/logging"
	"github.com/LipezJ/eco-hogar/internal/models"
	"github.com/LipezJ/eco-hogar/internal/projection"
	"github.com/LipezJ/eco-hogar/internal/services"
	"github.com/LipezJ/eco-hogar/internal/tasks"
)

const dateLayout = "2006-01-02"

var outputFormat string

var rootCmd = &cobra.Command{
	Use:           "finctl",
	Short:         "Eco Hogar command-line tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Print the French amortization schedule of a loan",
	RunE: func(cmd *cobra.Command, _ []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")
		rate, _ := cmd.Flags().GetFloat64("rate")
		installments, _ := cmd.Flags().GetInt("installments")
		startFlag, _ := cmd.Flags().GetString("start")
		paymentDay, _ := cmd.Flags().GetInt("payment-day")

		start, err := parseDate(startFlag, time.Now())
		if err != nil {
			return err
		}
		if paymentDay == 0 {
			paymentDay = start.Day()
		}

		quote, err := services.QuoteAmortization(projection.Loan{
			Amount:       amount,
			InterestRate: rate,
			Installments: installments,
			StartDate:    start,
			PaymentDay:   paymentDay,
		})
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, quote)
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Project the final amount of a term deposit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		initial, _ := cmd.Flags().GetFloat64("amount")
		rate, _ := cmd.Flags().GetFloat64("rate")
		term, _ := cmd.Flags().GetInt("term")
		openingFlag, _ := cmd.Flags().GetString("opening")

		opening, err := parseDate(openingFlag, time.Now())
		if err != nil {
			return err
		}

		quote, err := services.QuoteDeposit(initial, rate, term, opening)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, quote)
	},
}

var scheduleTaskCmd = &cobra.Command{
	Use:   "schedule-task <task_name>",
	Short: "Insert a scheduled task for the worker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argsFlag, _ := cmd.Flags().GetString("args")
		dueFlag, _ := cmd.Flags().GetString("due")
		recurring, _ := cmd.Flags().GetString("recurring")
		maxAttempt, _ := cmd.Flags().GetInt("max-attempt")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required to schedule tasks")
		}

		logger := logging.New(cfg.LogLevel, "finctl")
		ctx := context.Background()
		rt, err := app.Bootstrap(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		registry := tasks.NewRegistry()
		tasks.DefineTasks(registry, tasks.Deps{Users: rt.Stores.Users, Services: rt.Services, Logger: logger})
		if !slices.Contains(registry.Names(), args[0]) {
			return fmt.Errorf("unknown task %q, available: %v", args[0], registry.Names())
		}

		var taskArgs map[string]interface{}
		if err := json.Unmarshal([]byte(argsFlag), &taskArgs); err != nil {
			return fmt.Errorf("invalid --args: %w", err)
		}

		due := time.Now()
		if dueFlag != "" {
			due, err = time.Parse(time.RFC3339, dueFlag)
			if err != nil {
				return fmt.Errorf("invalid --due: %w", err)
			}
		}

		taskType := models.ScheduledTaskTypeOneTime
		var rule *string
		if recurring != "" {
			taskType = models.ScheduledTaskTypeRecurring
			rule = &recurring
		}

		task, err := tasks.BuildScheduledTask(args[0], taskArgs, due, rule, taskType, maxAttempt)
		if err != nil {
			return err
		}
		if err := rt.Tasks.Create(ctx, task); err != nil {
			return err
		}
		logger.Info("task scheduled", "id", task.ID, "task", task.TaskName, "due", task.Due.Format(time.RFC3339))
		return nil
	},
}

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml or debug")

	amortizeCmd.Flags().Float64("amount", 0, "Loan principal")
	amortizeCmd.Flags().Float64("rate", 0, "Annual interest rate in percent")
	amortizeCmd.Flags().Int("installments", 12, "Number of monthly installments")
	amortizeCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, default today)")
	amortizeCmd.Flags().Int("payment-day", 0, "Day of month payments are due (default start day)")

	depositCmd.Flags().Float64("amount", 0, "Initial amount")
	depositCmd.Flags().Float64("rate", 0, "Annual interest rate in percent")
	depositCmd.Flags().Int("term", 0, "Term in days")
	depositCmd.Flags().String("opening", "", "Opening date (YYYY-MM-DD, default today)")

	scheduleTaskCmd.Flags().String("args", "{}", "Task arguments as a JSON object")
	scheduleTaskCmd.Flags().String("due", "", "Due time in RFC3339 (default now)")
	scheduleTaskCmd.Flags().String("recurring", "", "RRULE for recurring tasks, e.g. FREQ=DAILY")
	scheduleTaskCmd.Flags().Int("max-attempt", 3, "Maximum attempts per run")

	rootCmd.AddCommand(amortizeCmd)
	rootCmd.AddCommand(depositCmd)
	rootCmd.AddCommand(scheduleTaskCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
