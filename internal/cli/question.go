package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/qbank/internal/adapters/cli"
)

// QuestionCmd returns the question command
func QuestionCmd(deps Deps) *cobra.Command {
	questionCmd := &cobra.Command{
		Use:   "question",
		Short: "Manage questions",
		Long:  "Add, update, delete, search, and draw questions from the bank",
	}

	questionCmd.AddCommand(questionAddCmd(deps))
	questionCmd.AddCommand(questionUpdateCmd(deps))
	questionCmd.AddCommand(questionDeleteCmd(deps))
	questionCmd.AddCommand(questionShowCmd(deps))
	questionCmd.AddCommand(questionListCmd(deps))
	questionCmd.AddCommand(questionSearchCmd(deps))
	questionCmd.AddCommand(questionRandomCmd(deps))

	return questionCmd
}

func questionAddCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a new question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, _ := cmd.Flags().GetString("topic")
			difficulty, _ := cmd.Flags().GetString("difficulty")

			return withBank(cmd, deps, writeBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Add(ctx, args[0], topic, difficulty)
			})
		},
	}
	cmd.Flags().StringP("topic", "t", "", "Question topic")
	cmd.Flags().StringP("difficulty", "d", "", "Question difficulty")
	return cmd
}

func questionUpdateCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [question-id]",
		Short: "Update a question",
		Long:  "Update a question. Only the given fields change; the question moves to its new topic and difficulty.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}
			text, _ := cmd.Flags().GetString("text")
			topic, _ := cmd.Flags().GetString("topic")
			difficulty, _ := cmd.Flags().GetString("difficulty")

			return withBank(cmd, deps, writeBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Update(ctx, id, text, topic, difficulty)
			})
		},
	}
	cmd.Flags().String("text", "", "New question text")
	cmd.Flags().StringP("topic", "t", "", "New topic")
	cmd.Flags().StringP("difficulty", "d", "", "New difficulty")
	return cmd
}

func questionDeleteCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [question-id]",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}

			return withBank(cmd, deps, writeBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Delete(ctx, id)
			})
		},
	}
}

func questionShowCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show [question-id]",
		Short: "Show question details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuestionID(args[0])
			if err != nil {
				return err
			}

			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Show(ctx, id)
			})
		},
	}
}

func questionListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.List(ctx)
			})
		},
	}
}

func questionSearchCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search questions by topic and difficulty",
		Long: `Search questions by topic and difficulty.
A question matches when its topic is one of --topic and its difficulty is one of
--difficulty. An omitted filter matches everything.`,
		Example: `  qbank question search --topic Algorithms,"Data Structures" --difficulty Easy`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, _ := cmd.Flags().GetStringSlice("topic")
			difficulties, _ := cmd.Flags().GetStringSlice("difficulty")

			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Search(ctx, cleanList(topics), cleanList(difficulties))
			})
		},
	}
	cmd.Flags().StringSliceP("topic", "t", nil, "Comma-separated topics")
	cmd.Flags().StringSliceP("difficulty", "d", nil, "Comma-separated difficulties")
	return cmd
}

func questionRandomCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Draw a random question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, _ := cmd.Flags().GetString("topic")
			difficulty, _ := cmd.Flags().GetString("difficulty")

			return withBank(cmd, deps, readBank, func(ctx context.Context, adapter *cliadapter.BankAdapter) error {
				return adapter.Random(ctx, strings.TrimSpace(topic), strings.TrimSpace(difficulty))
			})
		},
	}
	cmd.Flags().StringP("topic", "t", "", "Only draw from this topic")
	cmd.Flags().StringP("difficulty", "d", "", "Only draw from this difficulty")
	return cmd
}

func parseQuestionID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid question ID %q", arg)
	}
	return id, nil
}

// cleanList trims each entry and drops empty ones.
func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
