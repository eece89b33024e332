package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dynadraw/internal/dynamo"
)

var ErrRunNotFound = errors.New("run not found")

// Store keeps traced runs on disk, one directory per run holding
// metadata.json and frames.csv.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Params    Params             `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

type Params struct {
	Stiffness    float64 `json:"stiffness"`
	Damping      float64 `json:"damping"`
	Mass         float64 `json:"mass"`
	Ductus       float64 `json:"ductus"`
	MaxThickness float64 `json:"max_thickness"`
}

func FromParams(p dynamo.Params) Params {
	return Params{
		Stiffness:    p.Stiffness,
		Damping:      p.Damping,
		Mass:         p.Mass,
		Ductus:       p.Ductus,
		MaxThickness: p.MaxThickness,
	}
}

// Run is one traced scenario: its metadata plus per-frame pen speed and
// stroke thickness (zero on frames without ink).
type Run struct {
	RunMetadata
	Speed     []float64 `json:"speed"`
	Thickness []float64 `json:"thickness"`
}

// Save writes r under a fresh run id and returns the id. r.ID and
// r.Timestamp are filled in.
func (s *Store) Save(r *Run) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	r.Timestamp = s.now()
	base := fmt.Sprintf("%s_%d", r.Scenario, r.Timestamp.Unix())
	runID := base
	for i := 1; ; i++ {
		err := os.Mkdir(filepath.Join(s.baseDir, runID), 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
	r.ID = runID
	runDir := filepath.Join(s.baseDir, runID)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.RunMetadata); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, r); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame speed and thickness columns.
func (s *Store) LoadFrames(runID string) (speed, thickness []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, nil
	}

	for _, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, nil, fmt.Errorf("run %s: short row %v", runID, rec)
		}
		sp, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, nil, err
		}
		th, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, nil, err
		}
		speed = append(speed, sp)
		thickness = append(thickness, th)
	}
	return speed, thickness, nil
}

func WriteCSV(w io.Writer, r *Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "speed", "thickness"}); err != nil {
		return err
	}
	for i := range r.Speed {
		th := 0.0
		if i < len(r.Thickness) {
			th = r.Thickness[i]
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(r.Speed[i], 'f', 6, 64),
			strconv.FormatFloat(th, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, r *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
