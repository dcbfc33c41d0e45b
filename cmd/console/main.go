package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"partnerhub/internal/actor"
	"partnerhub/internal/config"
	"partnerhub/internal/dashboard"
	wire "partnerhub/pkg/models"
)

const usage = `usage: console <command> [args]

commands:
  contacts [search]             list conversations, newest first
  thread <phone>                show the conversation with phone
  send <phone> <text>           record a message in the local log
  send-api <phone> <text>       send through the Meta API (approved numbers only)
  recipients                    list approved recipients
  approve <phone> [description] approve a number for API sends
  remove <phone>                revoke approval
  settings <token> <phone-id> <waba-id>
                                save Meta API credentials
  status                        show Meta connection status
  watch                         follow the message log
  health                        show backend health
`

type console struct {
	client *actor.Client
	cfg    *config.ConsoleConfig
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatalf("Failed to load console config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &console{
		client: actor.NewClient(cfg.BaseURL, actor.Options{
			Token:     cfg.Token,
			Principal: cfg.Principal,
			CacheTTL:  time.Duration(cfg.CacheTTL) * time.Second,
		}),
		cfg: cfg,
	}

	if err := c.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func (c *console) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "contacts":
		return c.contacts(ctx, strings.Join(args, " "))
	case "thread":
		if len(args) != 1 {
			return fmt.Errorf("usage: console thread <phone>")
		}
		return c.thread(ctx, args[0])
	case "send", "send-api":
		if len(args) < 2 {
			return fmt.Errorf("usage: console %s <phone> <text>", cmd)
		}
		return c.send(ctx, cmd == "send-api", args[0], strings.Join(args[1:], " "))
	case "recipients":
		return c.recipients(ctx)
	case "approve":
		if len(args) < 1 {
			return fmt.Errorf("usage: console approve <phone> [description]")
		}
		return c.approve(ctx, args[0], strings.Join(args[1:], " "))
	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: console remove <phone>")
		}
		return report(dashboard.RemoveRecipient(ctx, c.client, args[0]))
	case "settings":
		if len(args) != 3 {
			return fmt.Errorf("usage: console settings <token> <phone-id> <waba-id>")
		}
		return report(dashboard.SaveSettings(ctx, c.client, wire.MetaApiConfig{
			AccessToken:               args[0],
			PhoneNumberID:             args[1],
			WhatsAppBusinessAccountID: args[2],
		}))
	case "status":
		return c.status(ctx)
	case "watch":
		return c.watch(ctx)
	case "health":
		r, err := c.client.GetBackendHealth(ctx)
		if err != nil {
			return err
		}
		fmt.Println(r.String())
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}
	return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
}

func (c *console) messages(ctx context.Context) ([]wire.WhatsAppMessage, error) {
	msgs, err := c.client.GetAllWhatsAppMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return msgs, nil
}

func (c *console) contacts(ctx context.Context, term string) error {
	msgs, err := c.messages(ctx)
	if err != nil {
		return err
	}
	contacts := dashboard.Filter(dashboard.Contacts(msgs, c.cfg.SelfNumber), term)
	writeContacts(os.Stdout, contacts, time.Now())
	return nil
}

func (c *console) thread(ctx context.Context, phone string) error {
	msgs, err := c.messages(ctx)
	if err != nil {
		return err
	}
	writeThread(os.Stdout, dashboard.Thread(msgs, phone), c.cfg.SelfNumber, time.Now())
	return nil
}

func (c *console) send(ctx context.Context, viaAPI bool, phone, text string) error {
	composer := dashboard.NewComposer(c.client, c.cfg.SelfNumber)
	composer.Select(phone)
	composer.SetDraft(text)

	if !viaAPI {
		return report(composer.SendLocal(ctx))
	}
	approved, err := c.client.ListRecipients(ctx)
	if err != nil {
		return fmt.Errorf("load approved recipients: %w", err)
	}
	return report(composer.SendViaAPI(ctx, approved))
}

func (c *console) recipients(ctx context.Context) error {
	list, err := c.client.ListRecipients(ctx)
	if err != nil {
		return err
	}
	writeRecipients(os.Stdout, list)
	return nil
}

func (c *console) approve(ctx context.Context, phone, description string) error {
	existing, err := c.client.ListRecipients(ctx)
	if err != nil {
		return fmt.Errorf("load approved recipients: %w", err)
	}
	return report(dashboard.AddRecipient(ctx, c.client, dashboard.RecipientForm{
		PhoneNumber: phone,
		Description: description,
	}, existing))
}

func (c *console) status(ctx context.Context) error {
	conn, err := dashboard.LoadConnection(ctx, c.client)
	if err != nil {
		return err
	}
	writeConnection(os.Stdout, conn)
	return nil
}

func (c *console) watch(ctx context.Context) error {
	feed := dashboard.NewFeed(c.client, time.Duration(c.cfg.PollInterval)*time.Second)
	var last string
	feed.Run(ctx, func(msgs []wire.WhatsAppMessage, err error) {
		if err != nil {
			log.Printf("Failed to load messages: %v", err)
			return
		}
		var b strings.Builder
		writeContacts(&b, dashboard.Contacts(msgs, c.cfg.SelfNumber), time.Now())
		if b.String() == last {
			return
		}
		last = b.String()
		fmt.Println(last)
	})
	return nil
}

// report prints n and turns an error notice into a non-zero exit.
func report(n dashboard.Notice) error {
	if n.Empty() {
		return nil
	}
	if n.Level != dashboard.LevelError {
		fmt.Println(n.Message)
		return nil
	}
	if n.Action == dashboard.ActionApproveRecipient && n.Contact != "" {
		return fmt.Errorf("%s\nRun: console approve %s", n.Message, n.Contact)
	}
	return fmt.Errorf("%s", n.Message)
}
