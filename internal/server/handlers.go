package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/bandslicer/pkg/buildinfo"
	apperrors "github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/mesh"
	"github.com/matzehuels/bandslicer/pkg/pipeline"
	"github.com/matzehuels/bandslicer/pkg/render"
	"github.com/matzehuels/bandslicer/pkg/slicer"
)

// sliceRequest is the body of POST /v1/slice.
type sliceRequest struct {
	Mesh   json.RawMessage `json:"mesh,omitempty"`
	OBJ    string          `json:"obj,omitempty"`
	Sample *sampleRequest  `json:"sample,omitempty"`

	Direction [3]float64          `json:"direction"`
	Prefix    string              `json:"prefix,omitempty"`
	Formats   []string            `json:"formats,omitempty"`
	Highlight *pipeline.Selection `json:"highlight,omitempty"`
	Refresh   bool                `json:"refresh,omitempty"`
}

type sampleRequest struct {
	Shape string  `json:"shape"`
	Size  float64 `json:"size,omitempty"`
	Cells int     `json:"cells,omitempty"`
}

// selectRequest is the body of POST /v1/select.
type selectRequest struct {
	sliceRequest
	Band    int   `json:"band"`
	Subsets []int `json:"subsets,omitempty"`
}

type sliceResponse struct {
	RunID     string            `json:"run_id"`
	MeshHash  string            `json:"mesh_hash"`
	Result    *slicer.Result    `json:"result"`
	Selected  []int             `json:"selected,omitempty"`
	Stats     statsResponse     `json:"stats"`
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

type statsResponse struct {
	Vertices      int     `json:"vertices"`
	Edges         int     `json:"edges"`
	Bands         int     `json:"bands"`
	Subsets       int     `json:"subsets"`
	ChainVertices int     `json:"chain_vertices"`
	Unclaimed     int     `json:"unclaimed"`
	SliceSeconds  float64 `json:"slice_seconds"`
}

type selectResponse struct {
	Band     int    `json:"band"`
	Name     string `json:"name"`
	Subsets  []int  `json:"subsets,omitempty"`
	Vertices []int  `json:"vertices"`
	Cached   bool   `json:"cached"`
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// options converts the request into pipeline options.
func (req *sliceRequest) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Direction: req.Direction,
		Prefix:    req.Prefix,
		Formats:   req.Formats,
		Highlight: req.Highlight,
		Refresh:   req.Refresh,
	}

	hasMesh := len(req.Mesh) > 0 && !bytes.Equal(req.Mesh, []byte("null"))
	if hasMesh && req.OBJ != "" {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "mesh and obj are mutually exclusive")
	}
	switch {
	case hasMesh:
		opts.MeshData = req.Mesh
		opts.MeshFormat = string(mesh.FormatJSON)
	case req.OBJ != "":
		opts.MeshData = []byte(req.OBJ)
		opts.MeshFormat = string(mesh.FormatOBJ)
	}

	if req.Sample != nil {
		shape, err := mesh.ParseShape(req.Sample.Shape)
		if err != nil {
			return opts, err
		}
		if req.Sample.Cells > maxSampleCells {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "sample cells must be at most %d", maxSampleCells)
		}
		opts.Sample = &mesh.SampleOptions{Shape: shape, Size: req.Sample.Size, Cells: req.Sample.Cells}
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode request")
	}
	return nil
}

func (s *Server) slice(w http.ResponseWriter, r *http.Request) {
	var req sliceRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := req.options()
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := sliceResponse{
		RunID:    res.RunID,
		MeshHash: res.MeshHash,
		Result:   res.Slices,
		Selected: res.Selected,
		Cached:   res.CacheInfo.SliceHit,
		Stats: statsResponse{
			Vertices:      res.Stats.Vertices,
			Edges:         res.Stats.Edges,
			Bands:         res.Stats.Bands,
			Subsets:       res.Stats.Subsets,
			ChainVertices: res.Stats.ChainVertices,
			Unclaimed:     res.Stats.Unclaimed,
			SliceSeconds:  res.Stats.SliceTime.Seconds(),
		},
	}
	// The JSON export is the result itself; other formats ride along as text.
	for format, data := range res.Artifacts {
		if format == string(render.FormatJSON) {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) selectVertices(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := req.options()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	m, meshHash, err := s.Runner.Load(ctx, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, _, hit, err := s.Runner.SliceWithCacheInfo(ctx, m, meshHash, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := res.Select(req.Band, req.Subsets...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, selectResponse{
		Band:     req.Band,
		Name:     res.Bands[req.Band].Name,
		Subsets:  req.Subsets,
		Vertices: ids,
		Cached:   hit,
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       buildinfo.Get().Version,
		UptimeSeconds: time.Since(s.started).Seconds(),
	})
}
