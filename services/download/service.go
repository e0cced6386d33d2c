package downloadsvc

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

// Download is one file handed over to the host.
type Download struct {
	Filename string
	MimeType string
	Content  []byte
}

type dirService struct {
	dir    string
	logger core.Logger
}

var _ core.Downloader = (*dirService)(nil)

// NewDirService returns a Downloader saving every download into dir.
func NewDirService(dir string, logger core.Logger) core.Downloader {
	return &dirService{dir: dir, logger: logger}
}

func (svc dirService) TriggerDownload(filename, mimeType string, content []byte) error {
	if err := os.MkdirAll(svc.dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", svc.dir)
	}
	// never write outside dir
	path := filepath.Join(svc.dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	svc.logger.Info("file saved", map[string]interface{}{"path": path, "mimeType": mimeType})
	return nil
}

// Recorder keeps every download in memory.
type Recorder struct {
	mu        sync.Mutex
	downloads []Download
	Err       error // returned by TriggerDownload when set
}

var _ core.Downloader = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{downloads: make([]Download, 0)}
}

func (r *Recorder) TriggerDownload(filename, mimeType string, content []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	data := make([]byte, len(content))
	copy(data, content)
	r.downloads = append(r.downloads, Download{Filename: filename, MimeType: mimeType, Content: data})
	return nil
}

func (r *Recorder) Downloads() []Download {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Download, len(r.downloads))
	copy(out, r.downloads)
	return out
}

// Last returns the most recent download.
func (r *Recorder) Last() (Download, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.downloads) == 0 {
		return Download{}, false
	}
	return r.downloads[len(r.downloads)-1], true
}
