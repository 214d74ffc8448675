package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/ukaji3/sheetplot-go/pkg/sheetplot"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/builder"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/export"
	"github.com/ukaji3/sheetplot-go/pkg/sheetplot/models"
)

const (
	// maxSelectionBytes caps JSON request bodies.
	maxSelectionBytes = 1 << 20
	// multipartSlack allows for the multipart envelope around an upload.
	multipartSlack = 64 << 10
	// defaultUploadName is used for raw uploads without a name parameter.
	defaultUploadName = "upload.xlsx"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session)

// withSession resolves {id} and runs h holding the session lock.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		e, ok := s.sessions.get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorBody{Status: "error", Message: "unknown session " + id})
			return
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		h(w, r, e.session)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "sessions": s.sessions.len()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.create()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.remove(id) {
		writeJSON(w, http.StatusNotFound, errorBody{Status: "error", Message: "unknown session " + id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type columnInfo struct {
	Name string            `json:"name"`
	Kind models.ColumnKind `json:"kind"`
	Min  *float64          `json:"min,omitempty"`
	Max  *float64          `json:"max,omitempty"`
}

type tableInfo struct {
	Book    string       `json:"book"`
	Sheet   string       `json:"sheet"`
	Range   string       `json:"range,omitempty"`
	Rows    int          `json:"rows"`
	Columns []columnInfo `json:"columns"`
}

func describeTable(t *models.Table) tableInfo {
	info := tableInfo{Book: t.BookName, Sheet: t.SheetName, Range: t.Range, Rows: t.Rows}
	for i := range t.Data {
		c := &t.Data[i]
		ci := columnInfo{Name: c.Name, Kind: c.Kind}
		if lo, hi, ok := c.MinMax(); ok {
			ci.Min, ci.Max = &lo, &hi
		}
		info.Columns = append(info.Columns, ci)
	}
	return info
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+multipartSlack)

	body, name, err := uploadedFile(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	if err := sess.Load(body, name); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Debugf("session %s loaded %s (%d rows)", r.PathValue("id"), name, sess.Table().Rows)
	writeJSON(w, http.StatusOK, describeTable(sess.Table()))
}

// uploadedFile returns the workbook of an upload: the multipart "file"
// field, or the raw request body.
func uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = defaultUploadName
		}
		return r.Body, name, nil
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", err
		}
		return nil, "", &badRequest{fmt.Errorf("invalid multipart upload: %w", err)}
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", &badRequest{fmt.Errorf("missing file field: %w", err)}
	}
	return f, hdr.Filename, nil
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	cols, err := sess.Columns()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns": cols,
		"numeric": sess.Table().NumericColumns(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	presets, err := sess.Presets()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if presets == nil {
		presets = []models.Preset{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"presets": presets})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request, _ *sheetplot.Session) {
	sel, err := builder.Defaults(models.ChartKind(r.PathValue("kind")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	sel, err := decodeSelection(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lim, err := sess.Limits(sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lim)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	sel, err := decodeSelection(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	spec, err := sess.Build(sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"kind":   spec.Kind(),
		"spec":   spec,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	sel, err := decodeSelection(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ro := s.cfg.Session.Render
	q := r.URL.Query()
	if v := q.Get("format"); v != "" {
		if ro.Format, err = models.ParseImageFormat(v); err != nil {
			s.writeError(w, r, &badRequest{err})
			return
		}
	}
	for key, dst := range map[string]*int{"width": &ro.Width, "height": &ro.Height} {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				s.writeError(w, r, &badRequest{fmt.Errorf("invalid %s %q", key, v)})
				return
			}
			*dst = n
		}
	}
	sess.SetRenderOptions(ro)

	f, err := sess.Export(sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, f.Name, f.MediaType, f.Size)
	if _, err := f.WriteTo(w); err != nil {
		s.log.Warnf("write %s: %v", f.Name, err)
	}
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	sel, err := decodeSelection(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := sess.HTML(&buf, sel); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeFile(w, export.HTMLName, export.HTMLMediaType, int64(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warnf("write %s: %v", export.HTMLName, err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, sess *sheetplot.Session) {
	img, err := sess.Preview()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", img.MediaType())
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	if prompt := sess.Prompt(); prompt != "" {
		w.Header().Set("X-Sheetplot-Prompt", prompt)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

func writeFile(w http.ResponseWriter, name, mediaType string, size int64) {
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
}

func decodeSelection(w http.ResponseWriter, r *http.Request) (models.Selection, error) {
	var sel models.Selection
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectionBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sel); err != nil {
		return sel, &badRequest{fmt.Errorf("invalid selection: %w", err)}
	}
	return sel, nil
}
