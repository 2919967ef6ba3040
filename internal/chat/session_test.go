package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/studyloop/ai-tutor/internal/gateway"
	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// fakeBackend records chat calls and serves a scripted reply or error
type fakeBackend struct {
	calls   int
	lastTxt string
	lastCmd bool
	reply   *gateway.ChatReply
	err     error
}

func (f *fakeBackend) Chat(_ context.Context, text string, systemCommand bool) (*gateway.ChatReply, error) {
	f.calls++
	f.lastTxt = text
	f.lastCmd = systemCommand
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

type fakeLessons struct {
	installed *model.LessonPlan
}

func (f *fakeLessons) InstallLessonPlan(plan *model.LessonPlan) {
	f.installed = plan
}

func newTestStore(backend *fakeBackend) *Store {
	return NewStore(backend, &fakeLessons{}, logger.NewNop())
}

func TestSubmit_EmptyInputIsIgnored(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "hi"}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "   ", SubmitOptions{})

	if backend.calls != 0 {
		t.Errorf("Expected no network call for blank input, got %d", backend.calls)
	}
	if len(store.Messages()) != 0 {
		t.Errorf("Expected empty transcript, got %d messages", len(store.Messages()))
	}
}

func TestSubmit_AppendsEchoThenReply(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "Photosynthesis is..."}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "what is photosynthesis?", SubmitOptions{})

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if !messages[0].IsFromUser || messages[0].Text != "what is photosynthesis?" {
		t.Errorf("Expected first message to be the user echo, got %+v", messages[0])
	}
	if messages[1].IsFromUser || messages[1].Text != "Photosynthesis is..." {
		t.Errorf("Expected second message to be the assistant reply, got %+v", messages[1])
	}
}

func TestSubmit_EchoSurvivesFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	store := newTestStore(backend)

	store.Submit(context.Background(), "hello", SubmitOptions{})

	messages := store.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected echo plus apology, got %d messages", len(messages))
	}
	if !messages[0].IsFromUser {
		t.Error("Expected the user echo to be appended before the failure")
	}
	if messages[1].Text != networkApology {
		t.Errorf("Expected apology message, got %q", messages[1].Text)
	}
}

func TestSubmit_LoadingResetsOnSuccessAndFailure(t *testing.T) {
	success := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "ok"}}
	failure := &fakeBackend{err: errors.New("timeout")}

	for name, backend := range map[string]*fakeBackend{"success": success, "failure": failure} {
		store := newTestStore(backend)

		var sawLoading bool
		store.SetUpdateCallback(func() {
			if store.Loading() {
				sawLoading = true
			}
		})

		store.Submit(context.Background(), "hi", SubmitOptions{})

		if !sawLoading {
			t.Errorf("%s: expected loading to be observable during submit", name)
		}
		if store.Loading() {
			t.Errorf("%s: expected loading false after submit settled", name)
		}
	}
}

func TestSubmit_SystemCommandIsSilent(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "selecting topics"}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "!select_topics", SubmitOptions{SystemCommand: true})

	if !backend.lastCmd {
		t.Error("Expected system command flag to be forwarded")
	}
	messages := store.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected only the assistant reply, got %d messages", len(messages))
	}
	if messages[0].IsFromUser {
		t.Error("Expected no user echo for a silent system command")
	}
}

func TestSubmit_TranscriptIsAppendOnly(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "answer"}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "first", SubmitOptions{})
	firstSnapshot := store.Messages()

	backend.err = errors.New("boom")
	store.Submit(context.Background(), "second", SubmitOptions{})

	messages := store.Messages()
	if len(messages) < len(firstSnapshot) {
		t.Fatalf("Transcript shrank from %d to %d", len(firstSnapshot), len(messages))
	}
	for i, msg := range firstSnapshot {
		if messages[i].ID != msg.ID || messages[i].Text != msg.Text {
			t.Errorf("Prior entry %d changed: %+v -> %+v", i, msg, messages[i])
		}
	}
}

func TestAddSystemMessage(t *testing.T) {
	store := newTestStore(&fakeBackend{})

	store.AddSystemMessage("Document processed, selecting topics...")

	messages := store.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].TeachingMode != model.TeachingModeSystem {
		t.Errorf("Expected teaching mode %q, got %q", model.TeachingModeSystem, messages[0].TeachingMode)
	}
	if messages[0].IsFromUser {
		t.Error("Expected system message to not be a user message")
	}
}

func TestClear(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "ok"}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "hi", SubmitOptions{})
	store.Clear()

	if len(store.Messages()) != 0 {
		t.Errorf("Expected empty transcript after Clear, got %d messages", len(store.Messages()))
	}
}

func TestSubmit_QuestionAnswerStillEchoes(t *testing.T) {
	backend := &fakeBackend{reply: &gateway.ChatReply{Kind: gateway.ReplyText, Text: "correct!"}}
	store := newTestStore(backend)

	store.Submit(context.Background(), "option B", SubmitOptions{QuestionAnswer: true})

	messages := store.Messages()
	if len(messages) != 2 || !messages[0].IsFromUser {
		t.Errorf("Expected answer submissions to echo like normal user messages, got %d messages", len(messages))
	}
}
