package notify

import (
	"context"
	"sync"

	"pet-adoption-platform/internal/platform/logger"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice es el aviso breve que acompaña a cada operación (éxito o rechazo).
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func Success(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDefault}
}

func Failure(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDestructive}
}

type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Recorder junta los avisos emitidos durante un request.
type Recorder struct {
	mu    sync.Mutex
	items []Notice
}

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) Notices() []Notice {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.items))
	copy(out, r.items)
	return out
}

type recorderKey struct{}

func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

func RecorderFrom(ctx context.Context) *Recorder {
	rec, _ := ctx.Value(recorderKey{}).(*Recorder)
	return rec
}

// LogNotifier registra el aviso y, si el contexto trae Recorder, lo agrega.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	fields := map[string]any{
		"title":       notice.Title,
		"description": notice.Description,
		"variant":     string(notice.Variant),
	}
	l := logger.FromContext(ctx, n.log)
	if notice.Variant == VariantDestructive {
		l.Warn("notice", fields)
	} else {
		l.Info("notice", fields)
	}
	if rec := RecorderFrom(ctx); rec != nil {
		rec.add(notice)
	}
}

// Discard no hace nada.
type Discard struct{}

func (Discard) Notify(context.Context, Notice) {}
