package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	// Ensure API Key is loaded
	_ "github.com/joho/godotenv/autoload"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/simmyhq/simmy"
	"github.com/simmyhq/simmy/agency"
	"github.com/simmyhq/simmy/messages"
	"github.com/simmyhq/simmy/pkg/slogx"
	"github.com/simmyhq/simmy/provider"
	"github.com/simmyhq/simmy/provider/openai"
	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/role"
)

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelWarn}),
	))
}

var glam *glamour.TermRenderer

func init() {
	var err error
	glam, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		panic(err)
	}
}

// logDir collects the bus log topics into timestamped files. Handlers run
// on whichever goroutine published, so every write goes through one mutex.
type logDir struct {
	mu  sync.Mutex
	dir string
}

func (l *logDir) append(file, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(l.dir, file), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("failed to open log file", slog.String("file", file), slogx.Error(err))
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s: %s\n", time.Now().Format("2006-01-02 15:04:05"), line)
}

func (l *logDir) truncate(files ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(l.dir, file), nil, 0o644); err != nil {
			slog.Warn("failed to clear log file", slog.String("file", file), slogx.Error(err))
		}
	}
}

func (l *logDir) topicHandler(file string) pubsub.Handler {
	return func(payload any) {
		if line, ok := payload.(string); ok {
			l.append(file, line)
		}
	}
}

// thread records one transcript entry in the conversation file as a JSON
// line.
func (l *logDir) thread(msg messages.Message) {
	l.append("agent.thread", msg.LogLine())
}

// taskNotices renders the tracker's lifecycle events through print. Wire it
// only when action notices are not silenced.
func taskNotices(bus *pubsub.Bus, print func(string)) {
	notice := func(verb string) pubsub.Handler {
		return func(payload any) {
			if task, ok := payload.(agency.Task); ok {
				print(fmt.Sprintf("%s task: %s", verb, task.Description))
			}
		}
	}
	bus.Subscribe(pubsub.TopicTaskCreated, notice("Created"))
	bus.Subscribe(pubsub.TopicTaskCompleted, notice("Completed"))
	bus.Subscribe(pubsub.TopicTaskNotesModified, notice("Modified notes for"))
	bus.Subscribe(pubsub.TopicTaskRequirementsModified, notice("Modified requirements for"))
}

func main() {
	llm := flag.String("llm", "openai", "the model backend to use")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	silenceActions := flag.Bool("silence-actions", false, "silence tool call and task notices")
	clearLogs := flag.Bool("clear-logs", false, "clear the log files before starting")
	flag.Parse()

	if err := mainE(*llm, *verbose, *silenceActions, *clearLogs); err != nil {
		slog.Error("simmy exited with an error", slogx.Error(err))
		os.Exit(1)
	}
}

func newClient(llm string) (provider.Client, error) {
	switch llm {
	case "openai":
		return openai.New(openai.DefaultModel), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q", llm)
	}
}

func mainE(llm string, verbose, silenceActions, clearLogs bool) error {
	client, err := newClient(llm)
	if err != nil {
		return err
	}

	dir := os.Getenv("LOG_DIRECTORY")
	if dir == "" {
		dir = "simmy-logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	logs := &logDir{dir: dir}
	if clearLogs {
		logs.truncate("agent.log", "general.log", "toolbox.log")
	}
	logs.truncate("agent.thread")

	rt, err := simmy.New(client,
		simmy.WithRole(role.Researcher()),
		simmy.WithVerbose(verbose),
		simmy.WithSilenceActions(silenceActions),
	)
	if err != nil {
		return err
	}

	bus := rt.Bus
	bus.Subscribe(pubsub.TopicAgentLog, logs.topicHandler("agent.log"))
	bus.Subscribe(pubsub.TopicGeneralLog, logs.topicHandler("general.log"))
	bus.Subscribe(pubsub.TopicToolboxLog, logs.topicHandler("toolbox.log"))

	bus.Subscribe(pubsub.TopicError, func(payload any) {
		fmt.Printf("%s %v\n", color.RedString("Error:"), payload)
	})
	bus.Subscribe(pubsub.TopicAgentError, func(payload any) {
		fmt.Printf("%s %v\n", color.RedString("Agent Error:"), payload)
	})

	if !silenceActions {
		bus.Subscribe(pubsub.TopicGeneralLog, func(payload any) {
			fmt.Printf("%s %v\n", color.YellowString("*"), payload)
		})
		taskNotices(bus, func(notice string) {
			fmt.Println(color.GreenString(notice))
		})
	}

	replies := make(chan string, 1)
	bus.Subscribe(pubsub.TopicNewAgentMessage, func(payload any) {
		message, ok := payload.(string)
		if !ok {
			return
		}
		logs.thread(messages.Assistant(message))
		select {
		case replies <- message:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The agent subscribes to exit_signal itself; this cancel unblocks the
	// input loop's wait for a reply.
	bus.Subscribe(pubsub.TopicExitSignal, func(any) { cancel() })

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nReceived exit signal, shutting down...")
		bus.Publish(pubsub.TopicExitSignal, "Signal exit")
		rt.Agent.Wait()
		fmt.Println("Agent stopped. Exiting now.")
		os.Exit(0)
	}()

	if err := rt.Start(ctx); err != nil {
		return err
	}

	simmySays("Hello and welcome! My name is Simmy!")

	scanner := bufio.NewScanner(os.Stdin)
	prompt := color.New(color.FgCyan, color.Bold).Sprint("You: ")
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			bus.Publish(pubsub.TopicExitSignal, "Input closed")
			break
		}
		input := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(input), "exit") {
			simmySays("Goodbye!")
			bus.Publish(pubsub.TopicExitSignal, "User exit")
			break
		}

		logs.thread(messages.User(input))
		bus.Publish(pubsub.TopicNewUserMessage, input)

		select {
		case message := <-replies:
			simmySays(message)
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	cancel()
	rt.Agent.Wait()
	fmt.Println("Shutting down...")
	return scanner.Err()
}

func simmySays(message string) {
	fmt.Println(color.New(color.FgBlue, color.Bold).Sprint("Simmy:"))
	rendered, err := glam.Render(message)
	if err != nil {
		fmt.Println(message)
		return
	}
	fmt.Print(rendered)
}
