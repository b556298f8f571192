package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/auth"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		p := newPrompter(cmd)
		password, err := p.Password("Password: ")
		if err != nil {
			return err
		}
		confirm, err := p.Password("Confirm Password: ")
		if err != nil {
			return err
		}

		return submitForm(cmd, auth.Form{
			Mode:            auth.ModeSignup,
			Name:            name,
			Email:           email,
			Password:        password,
			ConfirmPassword: confirm,
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		password, err := newPrompter(cmd).Password("Password: ")
		if err != nil {
			return err
		}
		return submitForm(cmd, auth.Form{
			Mode:     auth.ModeLogin,
			Name:     name,
			Password: password,
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.store.SessionRepo().Clear(cmd.Context()); err != nil {
			return err
		}
		successColor.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged-in username",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		s, err := d.store.SessionRepo().Load(cmd.Context())
		if err != nil {
			return err
		}
		if !s.Active() {
			noteColor.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Username)
		return nil
	},
}

func init() {
	signupCmd.Flags().String("name", "", "Username")
	signupCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("name", "", "Username")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("name")
}

// submitForm validates and sends the form, printing the outcome.
func submitForm(cmd *cobra.Command, f auth.Form) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	out, err := auth.Submit(cmd.Context(), d.client, d.store.SessionRepo(), f)
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Fields {
				errorColor.Fprintln(cmd.ErrOrStderr(), "✗", fe.Message)
			}
			return fmt.Errorf("%s form is invalid", f.Mode)
		}
		d.log.Warn().Err(err).Str("mode", string(f.Mode)).Msg("auth request failed")
		return errors.New(api.UserMessage(err))
	}

	w := cmd.OutOrStdout()
	switch out.Next {
	case auth.NextLogin:
		successColor.Fprintln(w, out.Message)
		fmt.Fprintln(w, "Log in with: bloomquiz login --name", strings.TrimSpace(f.Name))
	case auth.NextQuiz:
		successColor.Fprintln(w, out.Message)
		fmt.Fprintf(w, "Logged in as %s. Run `bloomquiz quiz` or `bloomquiz` to start.\n", out.Session.Username)
	}
	return nil
}
