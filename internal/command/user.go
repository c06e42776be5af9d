package command

import (
	"bytes"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/carmelngoyi/ccgoodies/internal/catalog"
	"github.com/carmelngoyi/ccgoodies/internal/sec"
	"github.com/carmelngoyi/ccgoodies/internal/store"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userDeleteCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create user",
		Long: "Creates a user account for the provided email. The password is read from\n" +
			"stdin or through the interactive prompt and must pass the signup policy.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, st, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			confirm, err := prompt("confirm password: ", true)
			if err != nil {
				return err
			}
			if err := sec.ValidateNewCredential(email, string(passwd), string(confirm)); err != nil {
				return err
			}

			doc, err := catalog.ToDocument(catalog.User{
				Email:     email,
				Password:  sec.EncodeCredential(string(passwd)),
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			id, err := st.InsertOne(cmd.Context(), catalog.Users, doc)
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created user",
				slog.String("email", email),
				slog.String("id", id),
			)
			return nil
		},
	}
}

func userDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete EMAIL",
		Short: "Delete user",
		Long: "Permanently deletes the user account. " +
			"This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, st, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			logger = logger.With(slog.String("email", email))
			filter := store.Filter{"email": email}
			if _, err := st.FindOne(cmd.Context(), catalog.Users, filter); err != nil {
				return err
			}
			resp, err := prompt("Are you sure you want to delete this user? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted user deletion")
				return err
			}
			if err := st.DeleteOne(cmd.Context(), catalog.Users, filter); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "user deleted")
			return nil
		},
	}
}
