package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/dashboard"
	"github.com/abhisek/bloomquiz/internal/quiz"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz without the full-screen UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		width, _ := cmd.Flags().GetInt("width")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.store.SessionRepo().Load(ctx)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		r := quiz.NewRunner(sess, d.client)
		if err := r.Start(ctx); err != nil {
			if errors.Is(err, quiz.ErrNoSession) {
				return errors.New("not logged in: run `bloomquiz login` first")
			}
			d.log.Error().Err(err).Str("username", sess.Username).Msg("fetch questions failed")
			return errors.New(api.UserMessage(err))
		}

		p := newPrompter(cmd)
		for r.Phase() == quiz.PhasePresenting {
			q, _ := r.Current()
			headingColor.Fprintf(w, "\nQuestion %d/%d\n", r.Index()+1, r.Total())
			fmt.Fprintln(w, q.Text)

			text, err := p.Line("> ")
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			if _, err := r.Answer(text); err != nil {
				if errors.Is(err, quiz.ErrEmptyAnswer) {
					errorColor.Fprintln(w, err)
					continue
				}
				return err
			}
		}

		noteColor.Fprintln(w, "\nSubmitting answers...")
		report, err := r.Finish(ctx)
		if err != nil {
			d.log.Error().
				Err(err).
				Str("username", sess.Username).
				Int("answers", len(r.Records())).
				Msg("submit answers failed")
			return errors.New(api.UserMessage(err))
		}

		attempts := d.store.AttemptRepo()
		if _, err := attempts.Record(ctx, screens.AttemptFromReport(sess.Username, r.Total(), report)); err != nil {
			d.log.Warn().Err(err).Msg("record attempt")
		}
		recent, err := attempts.ListByUser(ctx, sess.Username, screens.HistoryLimit)
		if err != nil {
			d.log.Warn().Err(err).Msg("load attempt history")
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, dashboard.Render(dashboard.Derive(report), store.AverageTimes(recent), width))
		return nil
	},
}

func init() {
	quizCmd.Flags().Int("width", 100, "Dashboard width in columns")
}
