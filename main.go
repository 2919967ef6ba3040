package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studyloop/ai-tutor/internal/chat"
	"github.com/studyloop/ai-tutor/internal/config"
	"github.com/studyloop/ai-tutor/internal/flashcards"
	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/lesson"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/progress"
	"github.com/studyloop/ai-tutor/internal/storage"
	"github.com/studyloop/ai-tutor/internal/topics"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	settings := config.Load()

	log, err := logger.New(settings.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("AI Tutor starting", "version", version, "backend", settings.BackendURL)

	// Local persistence is best-effort: without it the app still runs, the
	// pinned set just won't survive a restart.
	var store *storage.Store
	if s, err := storage.Open(settings.DataDir); err != nil {
		log.Warn("local storage unavailable", "err", err)
	} else {
		store = s
	}

	client := gateway.New(settings.BackendURL, settings.UserID, settings.HTTPTimeout, log)

	// All stores are constructed once here and passed explicitly; there is
	// no ambient registry to look them up from.
	progressStore := progress.NewStore(client, log)
	lessonStore := lesson.NewStore(client, progressStore, log)
	sessionStore := chat.NewStore(client, lessonStore, log)

	var pinStore flashcards.PinStore
	var docStore topics.DocumentStore
	if store != nil {
		pinStore = store
		docStore = store
	}
	pinnedStore := flashcards.NewStore(pinStore, log)
	pinnedStore.Restore()
	topicStore := topics.NewStore(client, docStore, log)
	topicStore.RestoreDocuments()

	runConsole(sessionStore, topicStore, pinnedStore, lessonStore)
}

// runConsole drives the stores from a minimal line-oriented surface. A
// richer presentation layer would observe the same update callbacks.
func runConsole(session *chat.Store, topicStore *topics.Store, pinned *flashcards.Store, lessons *lesson.Store) {
	ctx := context.Background()
	printed := 0

	printNew := func() {
		messages := session.Messages()
		for ; printed < len(messages); printed++ {
			msg := messages[printed]
			speaker := "tutor"
			if msg.IsFromUser {
				speaker = "you"
			}
			fmt.Printf("[%s] %s\n", speaker, msg.Text)
			if msg.HasDiagram {
				fmt.Printf("--- diagram ---\n%s\n---------------\n", msg.DiagramSource)
			}
			if msg.HasQuestion && msg.Question != nil {
				for i, opt := range msg.Question.Options {
					fmt.Printf("  %d. %s\n", i+1, opt.Label)
				}
			}
		}
	}

	fmt.Println("AI Tutor console. Type a message, or /help for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return

		case line == "/help":
			fmt.Println("/upload <path>  upload a study document")
			fmt.Println("/topics         show extracted topics")
			fmt.Println("/pins           list pinned flashcards")
			fmt.Println("/plan           show the current lesson plan")
			fmt.Println("/clear          clear the conversation")
			fmt.Println("/quit           exit")

		case strings.HasPrefix(line, "/upload "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/upload "))
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("cannot read %s: %v\n", path, err)
				continue
			}
			session.AddSystemMessage("Processing your document...")
			if err := topicStore.UploadDocument(ctx, filepath.Base(path), content); err != nil {
				fmt.Printf("upload failed: %v\n", err)
			} else {
				session.AddSystemMessage("Document processed. Use /topics to browse what was found.")
			}
			printNew()

		case line == "/topics":
			fmt.Printf("state: %s\n", topicStore.State())
			if text := topicStore.ErrorText(); text != "" {
				fmt.Printf("error: %s\n", text)
			}
			for _, topic := range topicStore.Topics() {
				fmt.Printf("- %s\n", topic.Title)
				for _, sub := range topic.Subtopics {
					fmt.Printf("    - %s\n", sub.Title)
				}
			}

		case line == "/pins":
			for i, card := range pinned.Cards() {
				fmt.Printf("%d. %s\n", i+1, card.Front.Title)
			}

		case line == "/plan":
			plan := lessons.CurrentPlan()
			if plan == nil {
				fmt.Println("no lesson plan yet")
				continue
			}
			fmt.Printf("%s (%d min)\n", plan.Title, plan.DurationMinutes)
			for _, step := range plan.TopicFlow {
				fmt.Printf("  %d. %s\n", step.Order, step.Name)
			}

		case line == "/clear":
			session.Clear()
			printed = 0

		default:
			session.Submit(ctx, line, chat.SubmitOptions{})
			printNew()
		}
	}
}
