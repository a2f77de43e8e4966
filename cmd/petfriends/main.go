/*
Copyright 2026 the PetFriends Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/petfriends-qa/api-tests/pkg/constants"
	"github.com/petfriends-qa/api-tests/pkg/openapi"
	"github.com/petfriends-qa/api-tests/test/api"
)

var (
	ErrUsage       = errors.New("usage error")
	ErrNoAuthKey   = errors.New("no auth key issued")
	ErrUnknownVerb = errors.New("unknown command")
)

// options are the global flags.  Flags that are set override the matching
// environment variable, everything else comes from the environment or .env.
type options struct {
	baseURL  string
	email    string
	password string
	authKey  string
	timeout  time.Duration
	debug    bool
	version  bool
}

func (o *options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", constants.DefaultBaseURL, "PetFriends service base URL (API_BASE_URL)")
	f.StringVar(&o.email, "email", "", "Account email (PETFRIENDS_EMAIL)")
	f.StringVar(&o.password, "password", "", "Account password (PETFRIENDS_PASSWORD)")
	f.StringVar(&o.authKey, "auth-key", "", "Use this auth key instead of requesting one")
	f.DurationVar(&o.timeout, "timeout", 30*time.Second, "Request timeout (REQUEST_TIMEOUT)")
	f.BoolVar(&o.debug, "debug", false, "Enable development logging and request header dumps")
	f.BoolVar(&o.version, "version", false, "Print the version and exit")
}

// exportFlags pushes explicitly set flags into the environment so
// configuration loading sees a single source.
func (o *options) exportFlags(f *pflag.FlagSet, logger logr.Logger) error {
	env := map[string]string{
		"base-url": "API_BASE_URL",
		"email":    "PETFRIENDS_EMAIL",
		"password": "PETFRIENDS_PASSWORD",
		"timeout":  "REQUEST_TIMEOUT",
		"debug":    "DEBUG_LOGGING",
	}

	var err error

	f.Visit(func(flag *pflag.Flag) {
		if name, ok := env[flag.Name]; ok && err == nil {
			err = os.Setenv(name, flag.Value.String())
		}
	})

	if err != nil {
		return fmt.Errorf("exporting flags: %w", err)
	}

	// A missing .env is normal, a malformed one is reported and skipped.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error(err, "loading .env")
	}

	// The CLI never starts the fake service, so fall back to the public one.
	if os.Getenv("API_BASE_URL") == "" {
		if err := os.Setenv("API_BASE_URL", o.baseURL); err != nil {
			return fmt.Errorf("exporting flags: %w", err)
		}
	}

	return nil
}

type pet struct {
	name       string
	animalType string
	age        string
	photo      string
}

func (p *pet) AddFlags(f *pflag.FlagSet, withPhoto bool) {
	f.StringVar(&p.name, "name", "", "Pet name")
	f.StringVar(&p.animalType, "type", "", "Animal type")
	f.StringVar(&p.age, "age", "", "Pet age")

	if withPhoto {
		f.StringVar(&p.photo, "photo", "", "Path to the pet photo")
	}
}

// invocation is everything a command needs to issue its request.
type invocation struct {
	client  *api.APIClient
	config  *api.TestConfig
	authKey string
	args    []string
}

type command struct {
	usage    string
	needsKey bool
	flags    func(f *pflag.FlagSet)
	run      func(ctx context.Context, inv *invocation) (*api.Response, error)
}

func petID(inv *invocation) (string, error) {
	if len(inv.args) != 1 {
		return "", fmt.Errorf("%w: exactly one pet ID is required", ErrUsage)
	}

	return inv.args[0], nil
}

func commands() map[string]*command {
	var (
		filter string
		p      pet
	)

	return map[string]*command{
		"key": {
			usage: "request an auth key for the configured account",
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				return inv.client.GetAPIKey(ctx, inv.config.Email, inv.config.Password)
			},
		},
		"list": {
			usage:    "list pets",
			needsKey: true,
			flags: func(f *pflag.FlagSet) {
				f.StringVar(&filter, "filter", "", "Listing filter, e.g. my_pets")
			},
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				return inv.client.ListPets(ctx, inv.authKey, openapi.PetFilter(filter))
			},
		},
		"add": {
			usage:    "add a pet with a photo",
			needsKey: true,
			flags: func(f *pflag.FlagSet) {
				p.AddFlags(f, true)
			},
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				return inv.client.AddPet(ctx, inv.authKey, p.name, p.animalType, p.age, p.photo)
			},
		},
		"add-simple": {
			usage:    "add a pet without a photo",
			needsKey: true,
			flags: func(f *pflag.FlagSet) {
				p.AddFlags(f, false)
			},
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				return inv.client.AddPetWithoutPhoto(ctx, inv.authKey, p.name, p.animalType, p.age)
			},
		},
		"update": {
			usage:    "update a pet: update [flags] <pet-id>",
			needsKey: true,
			flags: func(f *pflag.FlagSet) {
				p.AddFlags(f, false)
			},
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				id, err := petID(inv)
				if err != nil {
					return nil, err
				}

				return inv.client.UpdatePet(ctx, inv.authKey, id, p.name, p.animalType, p.age)
			},
		},
		"delete": {
			usage:    "delete a pet: delete <pet-id>",
			needsKey: true,
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				id, err := petID(inv)
				if err != nil {
					return nil, err
				}

				return inv.client.DeletePet(ctx, inv.authKey, id)
			},
		},
		"photo": {
			usage:    "set the photo of a pet: photo --photo <path> <pet-id>",
			needsKey: true,
			flags: func(f *pflag.FlagSet) {
				f.StringVar(&p.photo, "photo", "", "Path to the pet photo")
			},
			run: func(ctx context.Context, inv *invocation) (*api.Response, error) {
				id, err := petID(inv)
				if err != nil {
					return nil, err
				}

				return inv.client.SetPhoto(ctx, inv.authKey, id, p.photo)
			},
		},
	}
}

func usage(out io.Writer, global *pflag.FlagSet, cmds map[string]*command) {
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags] [args]\n\nCommands:\n", constants.Application)

	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %-11s %s\n", name, cmds[name].usage)
	}

	fmt.Fprintf(out, "\nFlags:\n%s", global.FlagUsages())
}

// run executes one command.  Any response from the service, whatever its
// status, is printed and counts as success.
//
//nolint:cyclop
func run(ctx context.Context, args []string, stdout io.Writer, logger logr.Logger) error {
	var o options

	global := pflag.NewFlagSet(constants.Application, pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	o.AddFlags(global)

	cmds := commands()

	if err := global.Parse(args); err != nil {
		usage(stdout, global, cmds)
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if o.version {
		fmt.Fprintln(stdout, constants.VersionString())
		return nil
	}

	if global.NArg() == 0 {
		usage(stdout, global, cmds)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	name := global.Arg(0)

	cmd, ok := cmds[name]
	if !ok {
		usage(stdout, global, cmds)
		return fmt.Errorf("%w: %s", ErrUnknownVerb, name)
	}

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	if cmd.flags != nil {
		cmd.flags(flags)
	}

	if err := flags.Parse(global.Args()[1:]); err != nil {
		fmt.Fprintf(stdout, "Usage of %s:\n%s", name, flags.FlagUsages())
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if err := o.exportFlags(global, logger); err != nil {
		return err
	}

	config, err := api.LoadTestConfig()
	if err != nil {
		return err
	}

	client, err := api.NewAPIClientWithConfig(config)
	if err != nil {
		return err
	}

	inv := &invocation{
		client:  client,
		config:  config,
		authKey: o.authKey,
		args:    flags.Args(),
	}

	if cmd.needsKey && inv.authKey == "" {
		resp, err := client.GetAPIKey(ctx, config.Email, config.Password)
		if err != nil {
			return err
		}

		if inv.authKey = resp.Key(); inv.authKey == "" {
			return fmt.Errorf("%w: %s", ErrNoAuthKey, resp)
		}

		logger.V(1).Info("obtained auth key", "traceID", resp.TraceID)
	}

	resp, err := cmd.run(ctx, inv)
	if err != nil {
		return err
	}

	logger.Info("request complete", "command", name, "status", resp.StatusCode, "traceID", resp.TraceID)

	fmt.Fprintf(stdout, "status: %d\n%s\n", resp.StatusCode, string(resp.Raw))

	return nil
}

func newLogger(debug bool) (logr.Logger, error) {
	zl, err := zap.NewProduction()
	if debug {
		zl, err = zap.NewDevelopment()
	}

	if err != nil {
		return logr.Discard(), fmt.Errorf("creating logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

func main() {
	debug := false

	for _, arg := range os.Args[1:] {
		if arg == "--debug" || arg == "--debug=true" {
			debug = true
		}
	}

	logger, err := newLogger(debug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.WithName("init").V(1).Info("cli starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error(err, "command failed")
		stop()
		os.Exit(1)
	}
}
