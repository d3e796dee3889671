package assets

import "sort"

// Delta is the signed size change of a file or an asset type.
// Positive values mean the pull request branch is larger.
type Delta struct {
	Raw  int64 `json:"raw"`
	Gzip int64 `json:"gzip"`
}

// Diff maps a normalized filename to its size change
type Diff map[string]Delta

// FileDelta is a single Diff entry with its filename
type FileDelta struct {
	File string
	Delta
}

// Files returns the entries of d ordered by filename
func (d Diff) Files() []FileDelta {
	files := make([]FileDelta, 0, len(d))
	for name, delta := range d {
		files = append(files, FileDelta{File: name, Delta: delta})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})
	return files
}

// DiffSizes computes the size change of every file in the pull request build.
//
// Files that are new in the pull request report their absolute sizes. Files
// only present in the base build are not part of the result; use RemovedFiles
// for those.
func DiffSizes(base, pr SizeMap) Diff {
	diff := make(Diff, len(pr))

	for name, newSize := range pr {
		originSize, ok := base[name]
		if !ok {
			diff[name] = Delta{Raw: newSize.Raw, Gzip: newSize.Gzip}
			continue
		}
		diff[name] = Delta{
			Raw:  newSize.Raw - originSize.Raw,
			Gzip: newSize.Gzip - originSize.Gzip,
		}
	}

	return diff
}

// RemovedFiles returns the base build entries that no longer exist in the
// pull request build
func RemovedFiles(base, pr SizeMap) SizeMap {
	removed := make(SizeMap)
	for name, size := range base {
		if _, ok := pr[name]; !ok {
			removed[name] = size
		}
	}
	return removed
}
