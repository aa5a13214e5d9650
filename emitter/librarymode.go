package emitter

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LibraryContract is a prior output directory's bindings.json set,
// loaded so a second run can emit only the subset of namespaces not
// already covered by it (§6's library-mode contract: "restrict
// emission to the subset not present in the contract", "validate that
// the contract covers every dangling reference of the subset",
// "validate binding consistency").
type LibraryContract struct {
	dir       string
	namespace map[string]bindingsFile
}

// LoadLibraryContract reads every namespace's bindings.json under dir
// (the same layout FileEmitter writes, one directory per dotted
// namespace plus _root) into a LibraryContract.
func LoadLibraryContract(dir string) (*LibraryContract, error) {
	c := &LibraryContract{dir: dir, namespace: make(map[string]bindingsFile)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "bindings.json" {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		var bf bindingsFile
		if err := json.Unmarshal(content, &bf); err != nil {
			return fmt.Errorf("malformed contract bindings %q: %w", path, err)
		}
		rel, err := filepath.Rel(dir, filepath.Dir(path))
		if err != nil {
			return err
		}
		c.namespace[contractNamespaceName(rel)] = bf
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("emitter: reading library contract %q: %w", dir, err)
	}
	return c, nil
}

// contractNamespaceName recovers a dotted namespace name from a
// bindings.json file's directory path relative to the contract root
// ("_root" denotes the global namespace).
func contractNamespaceName(relDir string) string {
	if relDir == "_root" || relDir == "." {
		return ""
	}
	return strings.ReplaceAll(filepath.ToSlash(relDir), "/", ".")
}

// coversNamespace reports whether the contract already emits ns in
// full, so FileEmitter can skip re-emitting it.
func (c *LibraryContract) coversNamespace(namespace string) bool {
	_, ok := c.namespace[namespace]
	return ok
}

// stableIdSet collects every exposure in bf keyed by its token, used by
// validateConsistency to compare exposures. Definition lists are not
// included.
func stableIdSet(bf bindingsFile) map[string]exposureEntry {
	out := make(map[string]exposureEntry)
	for _, t := range bf.Types {
		for _, ex := range t.Exposures {
			out[ex.Token] = ex
		}
	}
	return out
}

// ValidateDanglingCoverage reports an error naming every exposure in bf
// whose declaring type is neither defined in bf itself nor covered by
// the contract, i.e. a dangling reference the contract fails to cover
// (§6, library-mode validation (b)).
func (c *LibraryContract) ValidateDanglingCoverage(bf bindingsFile) error {
	declaredHere := make(map[string]bool, len(bf.Types))
	for _, t := range bf.Types {
		declaredHere[t.ClrName] = true
	}

	var missing []string
	for _, t := range bf.Types {
		for _, ex := range t.Exposures {
			if ex.DeclaringFullName == "" || declaredHere[ex.DeclaringFullName] {
				continue
			}
			if c.coversType(ex.DeclaringFullName) {
				continue
			}
			missing = append(missing, ex.DeclaringFullName)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("emitter: library contract does not cover dangling reference(s): %s", strings.Join(dedupe(missing), ", "))
	}
	return nil
}

func dedupe(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (c *LibraryContract) coversType(fullName string) bool {
	for _, bf := range c.namespace {
		for _, t := range bf.Types {
			if t.ClrName == fullName || t.StableId == fullName {
				return true
			}
		}
	}
	return false
}

// validateConsistency checks that every exposure this run computes for
// an already-contracted type matches the contract's recorded exposure
// by TSEmitName (§6, library-mode validation (c): "emitted ≡
// contract"), returning the freshly computed bindings unchanged when
// the namespace is not itself in the contract.
func (c *LibraryContract) validateConsistency(namespace string, fresh bindingsFile) (bindingsFile, error) {
	prior, ok := c.namespace[namespace]
	if !ok {
		return fresh, nil
	}
	priorByStableId := make(map[string]typeBindings, len(prior.Types))
	for _, t := range prior.Types {
		priorByStableId[t.StableId] = t
	}
	for _, t := range fresh.Types {
		pt, ok := priorByStableId[t.StableId]
		if !ok {
			continue
		}
		priorExposures := stableIdSet(bindingsFile{Types: []typeBindings{pt}})
		for _, ex := range t.Exposures {
			if prev, ok := priorExposures[ex.Token]; ok && prev.TSEmitName != ex.TSEmitName {
				return fresh, fmt.Errorf("emitter: library-mode binding mismatch for %s: contract has %q, run computed %q",
					ex.Token, prev.TSEmitName, ex.TSEmitName)
			}
		}
	}
	return fresh, nil
}
