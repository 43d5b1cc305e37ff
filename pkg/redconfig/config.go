// Package redconfig reads the reduction configuration file that sits at the top
// of a reduction directory, named after the directory: <dir>/<dir>.Red.Config
package redconfig

import(
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

/* Example config file, for reduction dir /data/ROME-FIELD-01_lsc-doma-1m0-05-fl15_ip ...

max_nim: 5
psf_size: 8
sky_degree: 2

The older whitespace separated form is also read:

max_nim     5
psf_size    8

*/

const(
	Suffix       = ".Red.Config"
	MaxFramesKey = "max_nim"
)

var ErrMissingKey = errors.New("key not set")

// ConfigError reports a configuration file, or a value within it, that could not be used.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Path, e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config holds every key of a Red.Config file as text; callers convert the
// values they need.
type Config struct {
	Path   string
	Values map[string]string
}

func NewConfig() Config {
	return Config{Values: map[string]string{}}
}

// WithMaxFrames builds an in-memory config, for callers that already know the
// frame budget and want to skip the file lookup.
func WithMaxFrames(n int) Config {
	c := NewConfig()
	c.Path = "(flags)"
	c.Values[MaxFramesKey] = strconv.Itoa(n)
	return c
}

// Filename is where the config for redDir lives.
func Filename(redDir string) string {
	dir := filepath.Clean(redDir)
	return filepath.Join(dir, filepath.Base(dir) + Suffix)
}

// Load reads the config file belonging to redDir.
func Load(redDir string) (Config, error) {
	return LoadFile(Filename(redDir))
}

func LoadFile(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, &ConfigError{Path: filename, Err: err}
	}

	c, err := parse(contents)
	if err != nil {
		return Config{}, &ConfigError{Path: filename, Err: err}
	}
	c.Path = filename
	return c, nil
}

func parse(b []byte) (Config, error) {
	c := NewConfig()

	m := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &m); err == nil {
		for k, v := range m {
			if v == nil {
				continue
			}
			c.Values[k] = fmt.Sprint(v)
		}
		return c, nil
	}

	// Not a YAML mapping; try the older "key value" lines.
	scanner := bufio.NewScanner(bytes.NewReader(b))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			return c, fmt.Errorf("line %d: no value for %q", lineNum, fields[0])
		}
		c.Values[fields[0]] = strings.Join(fields[1:], " ")
	}

	return c, scanner.Err()
}

// MaxFrames is the most reference frames the selector may pick.
func (c Config)MaxFrames() (int, error) {
	v, ok := c.Values[MaxFramesKey]
	if !ok {
		return 0, &ConfigError{Path: c.Path, Key: MaxFramesKey, Err: ErrMissingKey}
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &ConfigError{Path: c.Path, Key: MaxFramesKey, Err: fmt.Errorf("not an integer %q", v)}
	}
	if n < 1 {
		return 0, &ConfigError{Path: c.Path, Key: MaxFramesKey, Err: fmt.Errorf("must be at least 1, got %d", n)}
	}

	return n, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c.Values)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}
