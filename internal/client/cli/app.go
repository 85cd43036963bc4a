package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/client/client"
	"github.com/dmitrijs2005/recipebook/internal/client/config"
	"github.com/dmitrijs2005/recipebook/internal/client/notify"
	"github.com/dmitrijs2005/recipebook/internal/client/store"
	"github.com/dmitrijs2005/recipebook/internal/filex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	session *store.Session
	toast   *notify.Toaster
	reader  *bufio.Reader
	out     io.Writer
	db      *sql.DB

	modeMu sync.Mutex
	mode   Mode
}

// initDatabase is a seam for tests.
var initDatabase = client.InitDatabase

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	path, err := filex.EnsureParentDir(c.LocalDBPath)
	if err != nil {
		return nil, err
	}

	db, err := initDatabase(ctx, path)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	gw := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, client.NewSQLiteTokenStore(db))

	app := newApp(store.NewSession(gw), bufio.NewReader(os.Stdin), os.Stdout)
	app.config = c
	app.db = db
	return app, nil
}

func newApp(s *store.Session, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		session: s,
		toast:   notify.NewToaster(out),
		reader:  reader,
		out:     out,
	}
}

// Run resolves the saved session and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to the recipebook CLI (type 'help' for commands)")

	st := a.session.Init(ctx)
	if st.User != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", st.User.Email)
	}
	if err := a.session.Gateway.Ping(ctx); err == nil {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}

	interval := 3 * time.Second
	if a.config != nil && a.config.OnlineCheckInterval > 0 {
		interval = a.config.OnlineCheckInterval
	}
	go a.StartOnlineStatusWatcher(ctx, interval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(&lineReader{r: a.reader}))
}

// lineReader hands out at most one line per Read, so a bufio.Scanner on top
// of it never consumes input meant for the prompts that share the reader.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.buf) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.buf = line
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

func (a *App) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("error closing database: %s", err.Error())
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Auth.IsAuth()
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != "" && a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// getStatus renders the prompt status, e.g. "(cook@example.com online)".
func (a *App) getStatus() string {
	s := ""
	if u := a.session.Auth.State().User; u != nil {
		s = u.Email + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.session.Gateway.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
