// Package registry loads the set of known Argo CD cluster contexts from the
// argocd CLI's own local configuration and resolves cluster selectors
// ("all", explicit names, glob patterns) against it.
package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/estudosdevops/argo-manager/internal/logger"
)

// SelectorAll targets every registered cluster context.
const SelectorAll = "all"

// ClusterContext is one named Argo CD connection. Immutable once loaded.
type ClusterContext struct {
	Name      string // context name as shown by `argocd context`
	Server    string // server address passed as --server
	User      string
	GRPCWeb   bool
	Insecure  bool
	PlainText bool
	Namespace string // optional default namespace (tool config overlay)
	Project   string // optional default project (tool config overlay)
}

// Override carries per-cluster defaults layered on top of the argocd CLI
// config from the tool's own configuration file.
type Override struct {
	Namespace string
	Project   string
}

// localConfig mirrors the subset of ~/.config/argocd/config we need.
// The file is owned by the argocd CLI; we only ever read it.
type localConfig struct {
	CurrentContext string `yaml:"current-context"`
	Contexts       []struct {
		Name   string `yaml:"name"`
		Server string `yaml:"server"`
		User   string `yaml:"user"`
	} `yaml:"contexts"`
	Servers []struct {
		Server    string `yaml:"server"`
		GRPCWeb   bool   `yaml:"grpc-web"`
		Insecure  bool   `yaml:"insecure"`
		PlainText bool   `yaml:"plain-text"`
	} `yaml:"servers"`
}

// Registry holds the cluster contexts for the lifetime of the process.
// The config file is read once, on first use.
type Registry struct {
	path      string
	overrides map[string]Override

	mu       sync.Mutex
	once     sync.Once
	contexts []ClusterContext
	loadErr  error

	log *slog.Logger
}

// New creates a registry backed by the argocd CLI config at path.
// An empty path means DefaultConfigPath.
func New(path string, overrides map[string]Override) *Registry {
	return &Registry{
		path:      path,
		overrides: overrides,
		log:       logger.Get(),
	}
}

// DefaultConfigPath returns the argocd CLI's default local config location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "argocd", "config"), nil
}

// List returns every known cluster context in config-file order.
func (r *Registry) List() ([]ClusterContext, error) {
	r.once.Do(r.load)
	return r.contexts, r.loadErr
}

// Refresh discards the cached contexts and re-reads the config file.
func (r *Registry) Refresh() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.once = sync.Once{}
	r.once.Do(r.load)
	return r.loadErr
}

func (r *Registry) load() {
	configPath := r.path
	if configPath == "" {
		var err error
		configPath, err = DefaultConfigPath()
		if err != nil {
			r.loadErr = err
			return
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		r.loadErr = fmt.Errorf("failed to read argocd config %q: %w", configPath, err)
		return
	}

	var cfg localConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		r.loadErr = fmt.Errorf("invalid argocd config %q: %w", configPath, err)
		return
	}

	if len(cfg.Contexts) == 0 {
		r.loadErr = fmt.Errorf("no cluster contexts found in %q; run 'argocd login' first", configPath)
		return
	}

	// Connection options live on the server entry, keyed by address.
	serverOpts := make(map[string]struct{ grpcWeb, insecure, plainText bool }, len(cfg.Servers))
	for _, s := range cfg.Servers {
		serverOpts[s.Server] = struct{ grpcWeb, insecure, plainText bool }{s.GRPCWeb, s.Insecure, s.PlainText}
	}

	contexts := make([]ClusterContext, 0, len(cfg.Contexts))
	for _, c := range cfg.Contexts {
		ctx := ClusterContext{
			Name:   c.Name,
			Server: c.Server,
			User:   c.User,
		}
		if opts, ok := serverOpts[c.Server]; ok {
			ctx.GRPCWeb = opts.grpcWeb
			ctx.Insecure = opts.insecure
			ctx.PlainText = opts.plainText
		}
		if ov, ok := r.overrides[c.Name]; ok {
			ctx.Namespace = ov.Namespace
			ctx.Project = ov.Project
		}
		contexts = append(contexts, ctx)
	}

	r.contexts = contexts
	r.log.Debug("Loaded cluster contexts",
		"config", configPath,
		"contexts", len(contexts))
}

// Resolve expands a cluster selector into a set of contexts.
//
// The selector is either "all", or a comma-separated list of context names
// and glob patterns (matched case-insensitively). Token order is preserved;
// within a glob token, registry order is preserved. Duplicates are dropped,
// keeping the first occurrence. A token that matches nothing returns
// *UnknownClusterError, possibly carrying a "did you mean" suggestion.
func (r *Registry) Resolve(selector string) ([]ClusterContext, error) {
	contexts, err := r.List()
	if err != nil {
		return nil, err
	}

	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, SelectorAll) {
		return contexts, nil
	}

	names := make([]string, len(contexts))
	for i, c := range contexts {
		names[i] = c.Name
	}

	var resolved []ClusterContext
	seen := make(map[string]bool)

	for _, token := range strings.Split(selector, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		pattern := strings.ToLower(token)

		matched := false
		for _, c := range contexts {
			name := strings.ToLower(c.Name)
			ok := name == pattern
			if !ok {
				// path.Match never fails for patterns that already matched
				// nothing literally; a malformed pattern is reported below.
				var matchErr error
				ok, matchErr = path.Match(pattern, name)
				if matchErr != nil {
					return nil, fmt.Errorf("invalid cluster pattern %q: %w", token, matchErr)
				}
			}
			if ok {
				matched = true
				if !seen[c.Name] {
					seen[c.Name] = true
					resolved = append(resolved, c)
				}
			}
		}

		if !matched {
			return nil, &UnknownClusterError{
				Selector:   token,
				Suggestion: closestMatch(token, names),
			}
		}
	}

	if len(resolved) == 0 {
		return nil, &UnknownClusterError{Selector: selector}
	}
	return resolved, nil
}
