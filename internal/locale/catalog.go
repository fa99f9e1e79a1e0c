package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/alnah/go-secard/internal/yamlutil"
)

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

const catalogGlob = "catalogs/*.yaml"

type replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// catalogFile is the on-disk shape of catalogs/<language>.yaml.
// For each kind the transforms run in this order: convert, phrases, join, replace.
type catalogFile struct {
	Language string                     `yaml:"language"`
	Convert  map[Kind]string            `yaml:"convert"`
	Phrases  map[Kind]map[string]string `yaml:"phrases"`
	Join     map[Kind]string            `yaml:"join"`
	Replace  map[Kind][]replacement     `yaml:"replace"`
}

// Bundle holds one Table per language. Read-only after loading.
type Bundle struct {
	tables map[string]Table
}

var loadDefault = sync.OnceValues(func() (*Bundle, error) {
	return LoadFS(embeddedCatalogs)
})

// Default returns the embedded catalogs.
// It panics if they are invalid, which only a broken build can cause.
func Default() *Bundle {
	b, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("locale: embedded catalogs: %v", err))
	}
	return b
}

// ForLanguage resolves id against the embedded catalogs.
func ForLanguage(id string) (Localizer, error) {
	return Default().ForLanguage(id)
}

// LoadFS loads every catalogs/*.yaml file in fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, catalogGlob)
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	sort.Strings(paths)

	b := &Bundle{tables: make(map[string]Table, len(paths))}
	for _, p := range paths {
		var f catalogFile
		if err := yamlutil.ReadFS(fsys, p, &f); err != nil {
			return nil, err
		}
		key, err := f.key(p)
		if err != nil {
			return nil, err
		}
		if _, dup := b.tables[key]; dup {
			return nil, fmt.Errorf("%w: %s: language %q defined twice", ErrCatalog, p, key)
		}
		table, err := f.table()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		b.tables[key] = table
	}
	return b, nil
}

// Languages returns the catalog language keys, sorted.
func (b *Bundle) Languages() []string {
	out := make([]string, 0, len(b.tables))
	for k := range b.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ForLanguage parses id ("de", "zh_CN", "zh-CN") and returns its localizer.
// The region only takes part in matching when id names it explicitly.
// A valid language without a catalog gets Identity.
func (b *Bundle) ForLanguage(id string) (Localizer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Identity, nil
	}

	key, err := catalogKey(id)
	if err != nil {
		return nil, err
	}
	if t, ok := b.tables[key]; ok {
		return t, nil
	}
	if base, _, found := strings.Cut(key, "-"); found {
		if t, ok := b.tables[base]; ok {
			return t, nil
		}
	}
	return Identity, nil
}

// catalogKey reduces a language id to "lang" or "lang-REGION".
func catalogKey(id string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, id, err)
	}

	base, _ := tag.Base()
	key := base.String()
	if region, conf := tag.Region(); conf == language.Exact {
		key += "-" + region.String()
	}
	return key, nil
}

// key validates the declared language against the file name.
func (f catalogFile) key(p string) (string, error) {
	key, err := catalogKey(f.Language)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCatalog, p, err)
	}
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); key != want {
		return "", fmt.Errorf("%w: %s: language %q must match file name %q", ErrCatalog, p, key, want)
	}
	return key, nil
}

func (f catalogFile) table() (Table, error) {
	steps := make(map[Kind][]Transform)

	converters := make(map[string]Transform)
	for kind, name := range f.Convert {
		if !kind.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		conv, ok := converters[name]
		if !ok {
			var err error
			if conv, err = Convert(name); err != nil {
				return nil, err
			}
			converters[name] = conv
		}
		steps[kind] = append(steps[kind], conv)
	}
	for kind, m := range f.Phrases {
		if !kind.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		steps[kind] = append(steps[kind], Phrases(m))
	}
	for kind, sep := range f.Join {
		if !kind.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		steps[kind] = append(steps[kind], Join(sep))
	}
	for kind, reps := range f.Replace {
		if !kind.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		for _, r := range reps {
			steps[kind] = append(steps[kind], Replace(r.From, r.To))
		}
	}

	table := make(Table, len(steps))
	for kind, s := range steps {
		table[kind] = Chain(s...)
	}
	return table, nil
}
