package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/auth"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/config"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/ctxutil"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/db"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/errdefs"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/logging"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/observability"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/seed"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/service"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store"
	"github.com/Torremolinos/ProyectoIglesiasRinoAdrian/internal/store/memstore"
)

const usage = `usage: gestionfct [-email E -password P] <command> [flags]

commands:
  migrate        apply database migrations
  seed           load demo data into an empty store
  serve          run /healthz, /metrics and background jobs
  assign         create an assignment
  progress       record completed hours
  finalize       mark an assignment FINALIZED
  cancel         mark an assignment CANCELLED with a reason
  list           list assignments
  activate-year  make an academic year the active one
  export         write assignments to an .xlsx file
  attach         attach a document to an assignment
`

// env is what every command gets: config, logger, store and the facade.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
	sql   *sql.DB
	svc   *service.Service
	out   io.Writer
}

// now is the wall clock in the configured time zone.
func (e *env) now() time.Time { return time.Now().In(e.cfg.Location) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", errdefs.Message(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("gestionfct", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	email := global.String("email", "", "acting user e-mail")
	password := global.String("password", "", "acting user password")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return flag.ErrHelp
	}
	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		global.Usage()
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctxutil.DefaultDBTimeout = cfg.DBTimeout

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		lg = logging.Nop()
	}
	defer lg.Closer()
	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "gestionfct")
	if err != nil {
		lg.Base.Warn("sentry disabled", zap.Error(err))
	}
	defer flush()

	e, err := open(ctx, cfg, lg.Base, name == "migrate")
	if err != nil {
		return err
	}
	e.out = out
	if e.sql != nil {
		defer e.sql.Close()
	}

	if *email != "" {
		ctx, _, err = auth.New(e.store).Login(ctx, *email, *password)
		if err != nil {
			return err
		}
	}
	return cmd(ctxutil.WithCaller(ctx, name), e, rest)
}

// open builds the store named by the config. The in-memory store lives only
// for this process, so it starts out seeded.
func open(ctx context.Context, cfg *config.Config, log *zap.Logger, migrate bool) (*env, error) {
	e := &env{cfg: cfg, log: log}
	switch cfg.Store {
	case "memory":
		e.store = memstore.New()
		if _, err := seed.Run(ctx, e.store, log); err != nil {
			return nil, err
		}
	default:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errdefs.Storage("connect", err)
		}
		if migrate {
			if err := db.Migrate(ctx, conn); err != nil {
				_ = conn.Close()
				return nil, errdefs.Storage("migrate", err)
			}
		}
		e.sql = conn
		e.store = db.NewStore(conn)
	}
	e.svc = service.New(e.store,
		service.WithLogger(log),
		service.WithDocumentDir(cfg.DocumentDir),
		service.WithClock(e.now),
	)
	return e, nil
}
