package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/engine"
)

// AllProjects — значение --projects, выбирающее весь workspace.
const AllProjects = "all"

// ErrUnknownProject — в --projects указан проект вне workspace.
var ErrUnknownProject = errors.New("unknown project")

// AffectedProject — строка вывода affected.
type AffectedProject struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies"`
}

// NewAffectedCmd создаёт команду affected.
func NewAffectedCmd(sessionFn func(*cobra.Command) (*Session, error)) *cobra.Command {
	var projects string
	var dependents bool

	cmd := &cobra.Command{
		Use:   "affected",
		Short: "List affected projects and directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFn(cmd)
			if err != nil {
				return err
			}

			list, err := Affected(s.Projects, SplitProjects(projects), dependents)
			if err != nil {
				return err
			}

			headers := []string{"NAME", "PATH", "DEPENDENCIES"}
			rows := make([][]string, len(list))
			for i, p := range list {
				rows[i] = []string{p.Name, p.Path, strings.Join(p.Dependencies, ",")}
			}

			return s.Output.Print(headers, rows, list)
		},
	}

	cmd.Flags().StringVarP(&projects, "projects", "p", AllProjects, "Comma separated list of projects to check")
	cmd.Flags().BoolVar(&dependents, "dependents", false, "Include every project that depends on the listed ones")

	return cmd
}

// SplitProjects разбирает список через запятую, пропуская пустые элементы.
func SplitProjects(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Affected выбирает проекты по именам. "all" или пустой список — весь workspace.
// С withDependents добавляются все проекты, транзитивно зависящие от выбранных.
func Affected(projects []*domain.Project, names []string, withDependents bool) ([]AffectedProject, error) {
	byName := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		byName[p.Name] = p
	}

	selected := make(map[string]bool)
	if len(names) == 0 || (len(names) == 1 && names[0] == AllProjects) {
		for name := range byName {
			selected[name] = true
		}
	} else {
		for _, name := range names {
			if _, ok := byName[name]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownProject, name)
			}
			selected[name] = true
		}
	}

	if withDependents {
		dag, err := engine.BuildDAG(projects)
		if err != nil {
			return nil, err
		}
		roots := make([]string, 0, len(selected))
		for name := range selected {
			roots = append(roots, name)
		}
		for _, name := range roots {
			for _, dep := range dag.Downstream(name) {
				selected[dep] = true
			}
		}
	}

	out := make([]AffectedProject, 0, len(selected))
	for name := range selected {
		p := byName[name]
		out = append(out, AffectedProject{
			Name:         p.Name,
			Path:         p.Path,
			Dependencies: p.DependencyNames(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
