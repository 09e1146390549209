package semver

import (
	"os"
	"path/filepath"

	"github.com/Masterminds/vcs"
	"github.com/armon/go-radix"
	"github.com/pkg/errors"
)

// repoIndex resolves a package name to its configured repository URL by
// longest-prefix match, so a repo configured for a parent path covers its
// subpackages too.
type repoIndex struct {
	t *radix.Tree
}

func newRepoIndex(pkgs []RawPackage) *repoIndex {
	t := radix.New()
	for _, p := range pkgs {
		if p.Repo != "" {
			t.Insert(p.Name, p.Repo)
		}
	}
	return &repoIndex{t: t}
}

func (idx *repoIndex) lookup(pack string) (string, bool) {
	_, v, ok := idx.t.LongestPrefix(pack)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// tagLister fetches the tag names of a package's repository, checking it out
// under cacheDir on first use and updating it on every subsequent call.
type tagLister struct {
	cacheDir string
}

func newTagLister(cacheDir string) *tagLister {
	return &tagLister{cacheDir: cacheDir}
}

func (l *tagLister) tags(name, remote string) ([]string, error) {
	local := filepath.Join(l.cacheDir, sanitize(name))

	repo, err := vcs.NewRepo(remote, local)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to set up repo for %s", name)
	}

	if _, err := os.Stat(local); os.IsNotExist(err) {
		if err := repo.Get(); err != nil {
			return nil, errors.Wrapf(err, "unable to fetch %s", name)
		}
	} else if err := repo.Update(); err != nil {
		return nil, errors.Wrapf(err, "unable to update %s", name)
	}

	return repo.Tags()
}

// sanitize turns a package name into something safe to use as a single path
// element in the cache directory.
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
