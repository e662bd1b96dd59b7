// Package contact parses the contact CLI configuration and drives a
// contact form submission from the terminal.
package contact

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"portfolio-contact-backend/pkg/contactclient"

	"github.com/caarlos0/env/v11"
)

// Config holds the CLI configuration. The API location and timeout come
// from the environment; flags override them and supply the form fields.
type Config struct {
	APIURL         string `env:"CONTACT_API_URL" envDefault:"http://localhost:8080"`
	TimeoutSeconds int    `env:"CONTACT_TIMEOUT_SECONDS" envDefault:"10"`

	Name         string
	Email        string
	Phone        string
	Service      string
	Message      string
	ListServices bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.APIURL, "url", cfg.APIURL, "base URL of the contact API")
	fs.IntVar(&cfg.TimeoutSeconds, "timeout", cfg.TimeoutSeconds, "request timeout in seconds")
	fs.StringVar(&cfg.Name, "name", "", "sender name")
	fs.StringVar(&cfg.Email, "email", "", "sender email")
	fs.StringVar(&cfg.Phone, "phone", "", "sender phone (optional)")
	fs.StringVar(&cfg.Service, "service", "", "requested service id (see -list-services)")
	fs.StringVar(&cfg.Message, "message", "", `message text, or "-" to read it from stdin`)
	fs.BoolVar(&cfg.ListServices, "list-services", false, "print the service catalog and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.TimeoutSeconds <= 0 {
		return Config{}, errors.New("timeout must be greater than zero")
	}
	return cfg, nil
}

// Run lists the catalog or submits one contact request. Form notices go to
// out; the returned error carries the failure detail.
func Run(ctx context.Context, cfg Config, stdin io.Reader, out io.Writer) error {
	client := contactclient.New(cfg.APIURL,
		contactclient.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))

	if cfg.ListServices {
		return listServices(ctx, client, out)
	}

	message := cfg.Message
	if message == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		message = strings.TrimRight(string(raw), "\r\n")
	}

	form := contactclient.NewForm(client, contactclient.WithObserver(func(ev contactclient.Event) {
		if ev.Notice != "" {
			fmt.Fprintln(out, ev.Notice)
		}
	}))
	form.Open()
	defer form.Close()

	fields := map[string]string{
		"name":    cfg.Name,
		"email":   cfg.Email,
		"phone":   cfg.Phone,
		"service": cfg.Service,
		"message": message,
	}
	for name, value := range fields {
		if err := form.SetField(name, value); err != nil {
			return err
		}
	}

	return form.Submit(ctx)
}

func listServices(ctx context.Context, client *contactclient.Client, out io.Writer) error {
	services, err := client.Services(ctx)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	for _, s := range services {
		fmt.Fprintf(out, "%s\t%s\n", s.ID, s.Label)
	}
	return nil
}
