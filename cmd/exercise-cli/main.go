package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	exerciseclient "github.com/Apurer/purchase-order-exercise/internal/clients/http/exercise"
	exercisehttpmapper "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/http/mapper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "exercise-cli",
		Usage:     "walk through the purchase order exercise from a terminal",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the exercise API",
				Value:   "http://localhost:8080",
				EnvVars: []string{"EXERCISE_API_URL"},
			},
			&cli.StringFlag{
				Name:    "exercise",
				Aliases: []string{"e"},
				Usage:   "session id returned by `new`",
				EnvVars: []string{"EXERCISE_ID"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "offers",
				Usage: "compare the supplier offers",
				Action: func(cCtx *cli.Context) error {
					client, err := clientFrom(cCtx)
					if err != nil {
						return err
					}
					offers, err := client.ListOffers(cCtx.Context)
					if err != nil {
						return err
					}
					printOffers(cCtx.App.Writer, offers)
					return nil
				},
			},
			{
				Name:  "options",
				Usage: "list the allowed sales condition values",
				Action: func(cCtx *cli.Context) error {
					client, err := clientFrom(cCtx)
					if err != nil {
						return err
					}
					options, err := client.Options(cCtx.Context)
					if err != nil {
						return err
					}
					printOptions(cCtx.App.Writer, options)
					return nil
				},
			},
			{
				Name:  "new",
				Usage: "open a new session and print its id",
				Action: func(cCtx *cli.Context) error {
					client, err := clientFrom(cCtx)
					if err != nil {
						return err
					}
					exercise, err := client.Create(cCtx.Context)
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, exercise.ID)
					return nil
				},
			},
			sessionCommand("show", "print the session", "", 0, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.Get(cCtx.Context, id)
			}),
			sessionCommand("start", "leave the intro screen", "", 0, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.Start(cCtx.Context, id)
			}),
			sessionCommand("select", "choose an offer", "OFFER_ID", 1, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.SelectOffer(cCtx.Context, id, cCtx.Args().Get(0))
			}),
			sessionCommand("add", "add an offer line to the order", "ITEM_ID", 1, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.AddItem(cCtx.Context, id, cCtx.Args().Get(0))
			}),
			sessionCommand("remove", "remove a line from the order", "ITEM_ID", 1, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.RemoveItem(cCtx.Context, id, cCtx.Args().Get(0))
			}),
			sessionCommand("qty", "change a line quantity", "ITEM_ID QUANTITY", 2, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.UpdateQuantity(cCtx.Context, id, cCtx.Args().Get(0), cCtx.Args().Get(1))
			}),
			sessionCommand("condition", "set a sales condition (deliveryDelay, deliveryMode, paymentDelay, paymentMode)", "FIELD VALUE...", 1, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				args := cCtx.Args().Slice()
				return c.SetCondition(cCtx.Context, id, args[0], strings.Join(args[1:], " "))
			}),
			sessionCommand("sign", "sign the order", "NAME...", 1, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.SetSignature(cCtx.Context, id, strings.Join(cCtx.Args().Slice(), " "))
			}),
			sessionCommand("finish", "submit the order for review", "", 0, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.Finish(cCtx.Context, id)
			}),
			sessionCommand("restart", "discard the order and go back to the offers", "", 0, func(cCtx *cli.Context, c *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error) {
				return c.Restart(cCtx.Context, id)
			}),
			{
				Name:  "review",
				Usage: "print the review checklist",
				Action: func(cCtx *cli.Context) error {
					client, id, err := sessionFrom(cCtx)
					if err != nil {
						return err
					}
					review, err := client.Review(cCtx.Context, id)
					if err != nil {
						return err
					}
					printReview(cCtx.App.Writer, review)
					return nil
				},
			},
			{
				Name:  "document",
				Usage: "print the rendered purchase order",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "text", Usage: "text or html"},
				},
				Action: func(cCtx *cli.Context) error {
					client, id, err := sessionFrom(cCtx)
					if err != nil {
						return err
					}
					body, err := client.Document(cCtx.Context, id, cCtx.String("format"))
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, body)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "discard the session",
				Action: func(cCtx *cli.Context) error {
					client, id, err := sessionFrom(cCtx)
					if err != nil {
						return err
					}
					return client.Delete(cCtx.Context, id)
				},
			},
		},
	}
}

type sessionAction func(cCtx *cli.Context, client *exerciseclient.Client, id string) (*exercisehttpmapper.Exercise, error)

// sessionCommand builds a command that mutates or reads one session and prints it.
func sessionCommand(name, usage, argsUsage string, minArgs int, action sessionAction) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() < minArgs {
				return cli.Exit(fmt.Sprintf("usage: %s %s", name, argsUsage), 2)
			}
			client, id, err := sessionFrom(cCtx)
			if err != nil {
				return err
			}
			exercise, err := action(cCtx, client, id)
			if err != nil {
				printAPIError(cCtx.App.ErrWriter, err)
				return cli.Exit("", 1)
			}
			printExercise(cCtx.App.Writer, exercise)
			return nil
		},
	}
}

func clientFrom(cCtx *cli.Context) (*exerciseclient.Client, error) {
	return exerciseclient.New(cCtx.String("api-url"))
}

func sessionFrom(cCtx *cli.Context) (*exerciseclient.Client, string, error) {
	id := strings.TrimSpace(cCtx.String("exercise"))
	if id == "" {
		return nil, "", cli.Exit("no session: pass --exercise or set EXERCISE_ID (see `exercise-cli new`)", 2)
	}
	client, err := clientFrom(cCtx)
	if err != nil {
		return nil, "", err
	}
	return client, id, nil
}
