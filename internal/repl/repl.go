package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/notexe/postly-cli/internal/assist"
	"github.com/notexe/postly-cli/internal/scheduler"
	"github.com/notexe/postly-cli/internal/ui"
	"go.uber.org/zap"
)

// API is the backend the shell drives.
type API interface {
	scheduler.Backend
	scheduler.ReminderDeleter
	scheduler.Planner
}

// Options configures the shell.
type Options struct {
	Username    string
	BaseURL     string
	Colored     bool
	Spinner     bool
	HistoryFile string
	PlanDays    int
	Notes       *assist.NoteWriter // nil disables /note ai
	Logger      *zap.Logger
}

// REPL is the interactive scheduler shell.
type REPL struct {
	widget *scheduler.Widget
	api    API
	opts   Options
	logger *zap.Logger

	rl        *readline.Instance
	in        io.Reader
	out       io.Writer
	formatter *ui.Formatter
	status    *ui.StatusDisplay
	spinner   *ui.Spinner
}

func NewREPL(widget *scheduler.Widget, api API, opts Options) *REPL {
	formatter := ui.NewFormatter(opts.Colored)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PlanDays <= 0 {
		opts.PlanDays = 7
	}

	return &REPL{
		widget:    widget,
		api:       api,
		opts:      opts,
		logger:    logger.Named("repl"),
		in:        os.Stdin,
		out:       os.Stdout,
		formatter: formatter,
		status:    ui.NewStatusDisplay(formatter, opts.Spinner),
		spinner:   ui.NewSpinner(opts.Spinner, opts.Colored),
	}
}

// Start runs the read-eval loop until /quit, Ctrl+C or Ctrl+D.
func (r *REPL) Start(ctx context.Context) error {
	rl, err := setupReadline(r.opts.HistoryFile)
	if err != nil {
		return fmt.Errorf("failed to setup readline: %w", err)
	}
	r.rl = rl
	defer r.rl.Close()

	r.displayWelcome()
	r.displayMonth()

	for {
		r.rl.SetPrompt(r.formatter.FormatPrompt(r.promptLabel()))

		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		quit, err := r.Execute(ctx, input)
		if err != nil {
			r.displayError(err)
		}
		if quit {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	if r.rl != nil {
		r.rl.Close()
	}
}

// Execute runs one line of input. Plain text sets the note of the open
// reminder.
func (r *REPL) Execute(ctx context.Context, input string) (quit bool, err error) {
	isCommand, command, args := r.parseCommand(input)
	if !isCommand {
		if err := r.widget.Editor().SetNote(input); err != nil {
			return false, err
		}
		r.displayEditor()
		return false, nil
	}

	switch command {
	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "\nGoodbye!")
		return true, nil
	default:
		return false, r.handleCommand(ctx, command, args)
	}
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/show", "/s", "/calendar":
		r.displayMonth()
		return nil

	case "/prev", "/p":
		r.widget.PrevMonth()
		r.displayMonth()
		return nil

	case "/next", "/n":
		r.widget.NextMonth()
		r.displayMonth()
		return nil

	case "/today":
		r.widget.Navigator().GoToToday()
		r.displayMonth()
		return nil

	case "/month", "/m":
		return r.handleMonth(args)

	case "/day", "/d":
		return r.handleDay(args)

	case "/time", "/t":
		return r.handleTime(args)

	case "/platform":
		return r.handlePlatform(args)

	case "/draft":
		return r.handleDraft(args)

	case "/note":
		return r.handleNote(ctx, args)

	case "/email":
		return r.handleEmail(args)

	case "/save":
		return r.handleSave(ctx)

	case "/close", "/cancel":
		r.widget.CloseEditor()
		r.displaySystem("Reminder discarded.")
		return nil

	case "/suggest":
		return r.handleSuggest(ctx, args)

	case "/pick":
		return r.handlePick(args)

	case "/delete", "/rm":
		return r.handleDelete(ctx, args)

	case "/reload":
		return r.handleReload(ctx)

	case "/plan":
		return r.handlePlan(ctx, args)

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) promptLabel() string {
	snap := r.widget.Editor().Snapshot()
	if snap.State != scheduler.EditorClosed && !snap.Form.Date.IsZero() {
		return strings.ToLower(snap.Form.Date.At(12, 0, r.widget.Location()).Format("Jan 2"))
	}
	return strings.ToLower(r.widget.Navigator().Visible().Label())
}
