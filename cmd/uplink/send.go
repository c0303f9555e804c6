package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	dto "github.com/osa911/uplink/internal/api/dto/v1/contact"
	"github.com/osa911/uplink/internal/api/sanitization"
	"github.com/osa911/uplink/internal/cli"
	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/locale"
	"github.com/osa911/uplink/internal/relay"
	"github.com/osa911/uplink/internal/scramble"
	"github.com/osa911/uplink/internal/service"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact message",
	Long: `Send a contact message with the same rules as the website form:
name, email and message are all required. Servers with reCAPTCHA enabled
also need --recaptcha-token when sending through --server.

Example:
  uplink send --name "Ana" --email ana@example.com --message "Hola"
  echo "Hola" | uplink send --name "Ana" --email ana@example.com --message -
  uplink send --server https://api.example.com --name "Ana" --email ana@example.com --message "Hola"`,
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		message, _ := cmd.Flags().GetString("message")
		serverURL, _ := cmd.Flags().GetString("server")
		token, _ := cmd.Flags().GetString("recaptcha-token")

		if message == "-" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				logger.Error("Failed to read message from stdin: %v", err)
				os.Exit(1)
			}
			message = string(raw)
		}

		form := contact.Form{
			Name:          sanitization.SanitizeName(name),
			ReturnAddress: sanitization.SanitizeEmail(email),
			Message:       sanitization.SanitizeMessage(message),
		}

		lang := resolveLang(cmd)
		localizer := locale.NewLocalizer(lang)

		// Check locally first so a blank field never reaches the network
		if missing := contact.Validate(form); missing.Any() {
			printMissing(localizer, missing)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var err error
		if serverURL != "" {
			err = sendRemote(ctx, serverURL, lang, token, form)
		} else {
			err = sendDirect(ctx, form)
		}

		if err != nil {
			fmt.Println(locale.StatusLabel(localizer, contact.StatusError))
			logger.Error("%v", err)
			os.Exit(1)
		}
		fmt.Println(locale.StatusLabel(localizer, contact.StatusSent))
	},
}

// sendDirect delivers through the relay configured in the environment
func sendDirect(ctx context.Context, form contact.Form) error {
	cfg := loadConfig()

	r, err := relay.New(cfg, logger)
	if err != nil {
		return err
	}

	progress := cli.StartProgress(os.Stdout, cfg.ScrambleDuration)
	hostname, _ := os.Hostname()
	err = service.NewContactService(r, logger).Deliver(ctx, form, service.SubmissionInfo{
		IPAddress: "cli",
		UserAgent: "uplink-cli",
		Referrer:  hostname,
	})
	progress.Stop()

	var validationErr *contact.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("missing fields: %v", validationErr.Missing.Fields())
	}
	return err
}

// sendRemote delivers through a running uplink server
func sendRemote(ctx context.Context, serverURL, lang, token string, form contact.Form) error {
	client := cli.NewClient(serverURL, lang)

	progress := cli.StartProgress(os.Stdout, scramble.DefaultDuration)
	_, err := client.SendContact(ctx, dto.ContactRequest{
		Name:           form.Name,
		Email:          form.ReturnAddress,
		Message:        form.Message,
		RecaptchaToken: token,
	})
	progress.Stop()

	var apiErr *cli.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		for _, f := range apiErr.Fields {
			fmt.Printf("  %s: %s\n", f.Field, f.Message)
		}
	}
	return err
}

func printMissing(localizer *i18n.Localizer, missing contact.Missing) {
	for _, f := range missing.Fields() {
		fmt.Printf("  %s: %s\n", f, locale.FieldError(localizer, f))
	}
}

// resolveLang honours --lang, then the POSIX locale (es_MX.UTF-8 -> es)
func resolveLang(cmd *cobra.Command) string {
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang, _, _ = strings.Cut(os.Getenv("LANG"), ".")
		lang = strings.ReplaceAll(lang, "_", "-")
	}
	return locale.Resolve(lang, "")
}

func initSendCommand() {
	sendCmd.Flags().String("name", "", "Your name")
	sendCmd.Flags().String("email", "", "Address to reply to")
	sendCmd.Flags().String("message", "", "Message text, or - to read it from stdin")
	sendCmd.Flags().String("recaptcha-token", "", "reCAPTCHA token for servers that require one (with --server)")
}
