package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/veridoc/portal/internal/common"
	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
	"github.com/veridoc/portal/internal/portal/ocr"
)

// Phase is the workflow state: Idle → Selecting → Uploading → Validating
// → Done | Failed.
type Phase int

const (
	Idle Phase = iota
	Selecting
	Uploading
	Validating
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Uploading:
		return "uploading"
	case Validating:
		return "validating"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ErrBusy rejects a second submit while an upload/validate sequence is in
// flight; only one sequence may run per workflow instance.
var ErrBusy = errors.New("upload already in progress")

// ErrNoFile rejects a submit without a prior valid selection.
var ErrNoFile = errors.New("no file selected")

// Selection describes the file chosen for upload.
type Selection struct {
	Path     string
	Filename string
	MIME     string
	Size     int64
}

// Preview is the state of the optional OCR preview panel.
type Preview struct {
	Fields  map[string]string
	Warning string
	Pending bool
}

// Workflow drives one upload+validate sequence. Safe for concurrent use;
// the OCR preview runs on its own goroutine keyed by a generation counter
// so a superseded preview can never overwrite a newer selection's panel.
type Workflow struct {
	client  api.Client
	preview *ocr.Client
	log     logging.Logger

	mu       sync.Mutex
	phase    Phase
	sel      *Selection
	progress int
	errMsg   string
	result   *models.ValidationResult

	previewGen    uint64
	previewCancel context.CancelFunc
	previewState  Preview
}

// NewWorkflow builds a workflow. preview may be nil (OCR preview disabled);
// log may be nil.
func NewWorkflow(client api.Client, preview *ocr.Client, log logging.Logger) *Workflow {
	if log == nil {
		log = logging.Noop()
	}
	return &Workflow{client: client, preview: preview, log: log}
}

// Select validates the file at path and, when valid, moves to Selecting and
// fires the non-blocking OCR preview. On a validation failure the workflow
// stays in Idle and the error doubles as the user-facing message.
func (w *Workflow) Select(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		w.rejectSelection(fmt.Sprintf("Cannot read file: %v", err))
		return err
	}

	head := make([]byte, 512)
	f, err := os.Open(path)
	if err != nil {
		w.rejectSelection(fmt.Sprintf("Cannot read file: %v", err))
		return err
	}
	n, _ := io.ReadFull(f, head)
	_ = f.Close()

	mimeType := DetectMIME(path, head[:n])
	if err := CheckFile(mimeType, info.Size()); err != nil {
		w.rejectSelection(err.Error())
		return err
	}

	w.mu.Lock()
	w.phase = Selecting
	w.sel = &Selection{
		Path:     path,
		Filename: info.Name(),
		MIME:     mimeType,
		Size:     info.Size(),
	}
	w.errMsg = ""
	w.result = nil
	w.progress = 0
	w.mu.Unlock()

	w.startPreview(ctx, path, info.Name())
	return nil
}

// startPreview fires the best-effort OCR preview concurrently. A newer
// selection cancels and supersedes an older preview.
func (w *Workflow) startPreview(ctx context.Context, path, filename string) {
	if !w.preview.Enabled() {
		return
	}

	w.mu.Lock()
	if w.previewCancel != nil {
		w.previewCancel()
	}
	pctx, cancel := context.WithCancel(ctx)
	w.previewCancel = cancel
	w.previewGen++
	gen := w.previewGen
	w.previewState = Preview{Pending: true}
	w.mu.Unlock()

	go func() {
		defer cancel()

		var fields map[string]string
		f, err := os.Open(path)
		if err == nil {
			fields, err = w.preview.Extract(pctx, filename, f)
			_ = f.Close()
		}

		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.previewGen {
			return // superseded by a newer selection
		}
		if err != nil {
			w.log.Warn(pctx, "ocr preview unavailable", "error", err)
			w.previewState = Preview{Warning: "OCR preview unavailable"}
			return
		}
		w.previewState = Preview{Fields: fields}
	}()
}

// Run submits the selected file: upload with progress, then the validation
// trigger for the returned document id. It returns the validation result;
// the caller navigates to the results view for result.DocumentID.
func (w *Workflow) Run(ctx context.Context, progress func(percent int)) (*models.ValidationResult, error) {
	w.mu.Lock()
	if w.phase == Uploading || w.phase == Validating {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if w.sel == nil {
		w.mu.Unlock()
		return nil, ErrNoFile
	}
	sel := *w.sel
	w.phase = Uploading
	w.progress = 0
	w.errMsg = ""
	w.mu.Unlock()

	f, err := os.Open(sel.Path)
	if err != nil {
		w.fail(err)
		return nil, err
	}
	defer f.Close()

	doc, err := w.client.Upload(ctx, sel.Filename, f, sel.Size, func(pct int) {
		w.mu.Lock()
		w.progress = pct
		w.mu.Unlock()
		if progress != nil {
			progress(pct)
		}
	})
	if err != nil {
		w.fail(err)
		return nil, err
	}

	// The upload settled and produced a document id; validation progress is
	// indeterminate from here.
	w.mu.Lock()
	w.phase = Validating
	w.mu.Unlock()

	result, err := w.client.Validate(ctx, doc.ID)
	if err != nil {
		w.fail(err)
		return nil, err
	}

	w.mu.Lock()
	w.phase = Done
	w.result = result
	w.mu.Unlock()
	return result, nil
}

// fail routes errors per the taxonomy: the usage-limit business error
// returns the workflow to Idle (retryable after upgrade), everything else
// parks it in Failed until Reset.
func (w *Workflow) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if errors.Is(err, common.ErrUsageLimitReached) {
		w.phase = Idle
		w.sel = nil
		w.errMsg = api.UsageLimitMessage
		return
	}
	w.phase = Failed
	w.errMsg = api.UserMessage(err)
}

// Reset returns to Idle so the user can retry with the same or a new file.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.previewCancel != nil {
		w.previewCancel()
		w.previewCancel = nil
	}
	w.phase = Idle
	w.sel = nil
	w.progress = 0
	w.errMsg = ""
	w.result = nil
	w.previewState = Preview{}
}

// rejectSelection discards any previous selection along with setting the
// message, so a rejected pick can never leave an older file submittable.
func (w *Workflow) rejectSelection(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase = Idle
	w.sel = nil
	w.errMsg = msg
}

// Phase returns the current workflow phase.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Progress returns the upload percentage (meaningful while Uploading).
func (w *Workflow) Progress() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.progress
}

// Err returns the current user-facing error message, or "".
func (w *Workflow) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Selection returns a copy of the current selection, or nil.
func (w *Workflow) Selection() *Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sel == nil {
		return nil
	}
	sel := *w.sel
	return &sel
}

// Result returns the validation result once Done.
func (w *Workflow) Result() *models.ValidationResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// PreviewState returns the OCR preview panel state.
func (w *Workflow) PreviewState() Preview {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.previewState
}
