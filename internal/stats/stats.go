package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/consensys/qnark/frontend"
)

const nbWidths = 8

// Widths are the register widths every snippet is compiled at for the
// regression statistics.
var Widths = [nbWidths]int{1, 2, 3, 4, 8, 16, 32, 64}

// WidthIdx returns the index of width in Widths.
func WidthIdx(width int) int {
	for i, w := range Widths {
		if w == width {
			return i
		}
	}
	panic("width " + strconv.Itoa(width) + " not in stats.Widths")
}

func NewGlobalStats() *globalStats {
	return &globalStats{
		Stats: make(map[string][nbWidths]snippetStats),
	}
}

func (s *globalStats) WriteTo(w io.Writer) (int64, error) {
	csvWriter := csv.NewWriter(w)

	// write header
	if err := csvWriter.Write([]string{"circuit", "width", "nbGates", "nbAnds", "nbQubits", "maxAncillas"}); err != nil {
		return 0, err
	}

	// sort circuits names to have a deterministic output
	var circuitNames []string
	for circuitName := range s.Stats {
		circuitNames = append(circuitNames, circuitName)
	}

	sort.Strings(circuitNames)

	// write data
	for _, circuitName := range circuitNames {
		innerStats := s.Stats[circuitName]
		for widthIdx, stats := range innerStats {
			if stats == (snippetStats{}) {
				continue // snippet not compiled at this width
			}
			width := strconv.Itoa(Widths[widthIdx])

			if err := csvWriter.Write([]string{circuitName, width, strconv.Itoa(stats.NbGates), strconv.Itoa(stats.NbAnds), strconv.Itoa(stats.NbQubits), strconv.Itoa(stats.MaxAncillas)}); err != nil {
				return 0, err
			}
		}
	}

	csvWriter.Flush()
	return 0, nil
}

func (s *globalStats) Load(path string) error {
	fStats, err := os.Open(path) //#nosec G304 -- ignoring internal package
	if err != nil {
		return err
	}

	defer fStats.Close()

	csvReader := csv.NewReader(fStats)
	records, err := csvReader.ReadAll()
	if err != nil {
		return err
	}

	s.Stats = make(map[string][nbWidths]snippetStats)

	for i, record := range records {
		if i == 0 {
			continue // header
		}
		// we don't do validation here, we assume the file is correct;;
		circuitName := record[0]
		width, _ := strconv.Atoi(record[1])
		nbGates, _ := strconv.Atoi(record[2])
		nbAnds, _ := strconv.Atoi(record[3])
		nbQubits, _ := strconv.Atoi(record[4])
		maxAncillas, _ := strconv.Atoi(record[5])

		rs := s.Stats[circuitName]
		rs[WidthIdx(width)] = snippetStats{nbGates, nbAnds, nbQubits, maxAncillas}
		s.Stats[circuitName] = rs
	}

	return nil
}

func NewSnippetStats(circuit frontend.Circuit) (snippetStats, error) {
	compiled, err := frontend.Compile(circuit)
	if err != nil {
		return snippetStats{}, err
	}

	// ensure we didn't introduce regressions that make adders less efficient
	return snippetStats{
		NbGates:     compiled.NbGates(),
		NbAnds:      compiled.NbAnds(),
		NbQubits:    compiled.NbQubits,
		MaxAncillas: compiled.MaxAncillas,
	}, nil
}

func (s *globalStats) Add(circuitName string, width int, cs snippetStats) {
	s.Lock()
	defer s.Unlock()
	rs := s.Stats[circuitName]
	rs[WidthIdx(width)] = cs
	s.Stats[circuitName] = rs
}

type Circuit struct {
	// Make builds the snippet wrapper circuit for one register width.
	Make   func(width int) frontend.Circuit
	Widths []int
}

type globalStats struct {
	sync.RWMutex
	Stats map[string][nbWidths]snippetStats
}

type snippetStats struct {
	NbGates, NbAnds, NbQubits, MaxAncillas int
}

func (cs snippetStats) String() string {
	return fmt.Sprintf("nbGates: %d, nbAnds: %d, nbQubits: %d, maxAncillas: %d", cs.NbGates, cs.NbAnds, cs.NbQubits, cs.MaxAncillas)
}
