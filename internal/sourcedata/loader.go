package sourcedata

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
)

// rhymeFileResult pairs a source file's parsed records with any error, so the
// worker pool can report provenance alongside a parsing failure.
type rhymeFileResult struct {
	path    string
	records []*rhyme.Record
	chars   [][]rune
	err     error
}

// LoadRhymeDir parses every *.json file in dir — Pingshui or Cilin format,
// chosen by filename convention ("cilin" in the name selects ParseCilin) —
// and merges them into one rhyme dictionary. Record identifiers are
// renumbered across files to stay globally unique.
func LoadRhymeDir(dir string) (*rhyme.Dict, error) {
	paths, err := jsonFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return rhyme.Build(nil, nil), nil
	}

	bar := newBar(len(paths), "rhyme dicts")
	results := make([]rhymeFileResult, len(paths))

	workers := runtime.NumCPU()
	work := make(chan int, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				path := paths[idx]
				results[idx] = parseRhymeFile(path)
				bar.Increment()
			}
		}()
	}
	for i := range paths {
		work <- i
	}
	close(work)
	wg.Wait()
	bar.Wait()

	var allRecords []*rhyme.Record
	var allChars [][]rune
	nextID := rhyme.ID(0)

	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("sourcedata: %s: %w", r.path, r.err)
		}
		for i, rec := range r.records {
			renumbered := &rhyme.Record{ID: nextID, Name: rec.Name, Group: rec.Group, Tone: rec.Tone}
			allRecords = append(allRecords, renumbered)
			allChars = append(allChars, r.chars[i])
			nextID++
		}
	}

	return rhyme.Build(allRecords, allChars), nil
}

func parseRhymeFile(path string) rhymeFileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return rhymeFileResult{path: path, err: err}
	}

	var records []*rhyme.Record
	var chars [][]rune
	if strings.Contains(strings.ToLower(filepath.Base(path)), "cilin") {
		records, chars, err = ParseCilin(data)
	} else {
		records, chars, err = ParsePingshui(data)
	}
	return rhymeFileResult{path: path, records: records, chars: chars, err: err}
}

// LoadCipaiDir parses every *.xml file in dir as a cipai template library
// and concatenates the resulting templates.
func LoadCipaiDir(dir string) ([]*cipai.Template, error) {
	paths, err := xmlFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	bar := newBar(len(paths), "cipai templates")
	type fileResult struct {
		templates []*cipai.Template
		err       error
		path      string
	}
	results := make([]fileResult, len(paths))

	workers := runtime.NumCPU()
	work := make(chan int, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				path := paths[idx]
				data, readErr := os.ReadFile(path)
				if readErr != nil {
					results[idx] = fileResult{path: path, err: readErr}
					bar.Increment()
					continue
				}
				tpls, parseErr := ParseCipaiLibrary(data)
				results[idx] = fileResult{path: path, templates: tpls, err: parseErr}
				bar.Increment()
			}
		}()
	}
	for i := range paths {
		work <- i
	}
	close(work)
	wg.Wait()
	bar.Wait()

	var all []*cipai.Template
	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("sourcedata: %s: %w", r.path, r.err)
		}
		all = append(all, r.templates...)
	}
	return all, nil
}

func jsonFiles(dir string) ([]string, error) {
	return globFiles(dir, ".json")
}

func xmlFiles(dir string) ([]string, error) {
	return globFiles(dir, ".xml")
}

func globFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sourcedata: failed to read directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func newBar(total int, label string) *mpb.Bar {
	progress := mpb.New(mpb.WithWidth(60), mpb.WithRefreshRate(100*time.Millisecond))
	return progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label+": ", decor.WC{W: len(label) + 2, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage(decor.WC{W: 5})),
	)
}
