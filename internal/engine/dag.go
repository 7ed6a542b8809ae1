package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shaiso/Zenith/internal/domain"
)

// Node — узел в DAG.
type Node struct {
	// Project — проект workspace.
	Project *domain.Project

	// ID — имя проекта.
	ID string

	// InDegree — количество входящих рёбер (зависимостей).
	InDegree int

	// DependsOn — узлы, от которых зависит этот узел.
	DependsOn []*Node

	// Dependents — узлы, которые зависят от этого узла.
	Dependents []*Node

	// Level — номер раунда (с 0), в котором проект станет готов.
	Level int
}

// DAG — направленный ациклический граф проектов workspace.
type DAG struct {
	// Nodes — все узлы графа (имя → Node).
	Nodes map[string]*Node

	// RootNodes — проекты без зависимостей (первый раунд).
	RootNodes []*Node

	// Order — топологически отсортированный список узлов.
	Order []*Node
}

// BuildDAG строит DAG из проектов и проверяет отсутствие циклов.
func BuildDAG(projects []*domain.Project) (*DAG, error) {
	dag := &DAG{
		Nodes:     make(map[string]*Node, len(projects)),
		RootNodes: make([]*Node, 0),
	}

	// Первый проход: создаём все узлы
	for _, p := range projects {
		dag.Nodes[p.Name] = &Node{
			Project:    p,
			ID:         p.Name,
			DependsOn:  make([]*Node, 0),
			Dependents: make([]*Node, 0),
		}
	}

	// Второй проход: связываем узлы по зависимостям
	for _, p := range projects {
		node := dag.Nodes[p.Name]
		for _, depID := range p.DependencyNames() {
			depNode, exists := dag.Nodes[depID]
			if !exists {
				return nil, NewValidationError(p.Name, "dependencies",
					fmt.Sprintf("depends on unknown project: %s", depID), ErrMissingDependency)
			}
			dag.addEdge(depNode, node)
		}
	}

	dag.findRootNodes()

	order, err := dag.topologicalSort()
	if err != nil {
		return nil, err
	}
	dag.Order = order

	return dag, nil
}

// addEdge добавляет ребро между узлами.
// Дополнительно проверяет на дубликаты, чтобы избежать двойного учета InDegree.
func (d *DAG) addEdge(from, to *Node) {
	for _, dep := range to.DependsOn {
		if dep.ID == from.ID {
			return
		}
	}
	from.Dependents = append(from.Dependents, to)
	to.DependsOn = append(to.DependsOn, from)
	to.InDegree++
}

// findRootNodes находит узлы без входящих рёбер.
func (d *DAG) findRootNodes() {
	d.RootNodes = make([]*Node, 0)
	for _, node := range d.Nodes {
		if node.InDegree == 0 {
			d.RootNodes = append(d.RootNodes, node)
		}
	}
	sortNodes(d.RootNodes)
}

// topologicalSort выполняет топологическую сортировку (алгоритм Кана)
// и заполняет Level каждого узла.
// Возвращает ошибку, если обнаружен цикл.
func (d *DAG) topologicalSort() ([]*Node, error) {
	// Копируем inDegree, чтобы не модифицировать оригинал
	inDegree := make(map[string]int, len(d.Nodes))
	for id, node := range d.Nodes {
		inDegree[id] = node.InDegree
		node.Level = 0
	}

	queue := make([]*Node, len(d.RootNodes))
	copy(queue, d.RootNodes)

	order := make([]*Node, 0, len(d.Nodes))

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		next := make([]*Node, 0)
		for _, dependent := range node.Dependents {
			if dependent.Level < node.Level+1 {
				dependent.Level = node.Level + 1
			}
			inDegree[dependent.ID]--
			if inDegree[dependent.ID] == 0 {
				next = append(next, dependent)
			}
		}
		sortNodes(next)
		queue = append(queue, next...)
	}

	// Если не все узлы обработаны — есть цикл
	if len(order) != len(d.Nodes) {
		stuck := make([]string, 0, len(d.Nodes)-len(order))
		for id, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: %s", ErrCyclicDependency, strings.Join(stuck, ", "))
	}

	return order, nil
}

// Size возвращает количество узлов в DAG.
func (d *DAG) Size() int {
	return len(d.Nodes)
}

// Levels группирует проекты по раундам, в которых они будут выполнены.
// Внутри раунда имена отсортированы.
func (d *DAG) Levels() [][]string {
	depth := 0
	for _, node := range d.Order {
		if node.Level+1 > depth {
			depth = node.Level + 1
		}
	}

	levels := make([][]string, depth)
	for _, node := range d.Order {
		levels[node.Level] = append(levels[node.Level], node.ID)
	}
	for _, level := range levels {
		sort.Strings(level)
	}
	return levels
}

// Downstream возвращает отсортированные имена всех проектов,
// транзитивно зависящих от id (сам id не включается).
func (d *DAG) Downstream(id string) []string {
	start, ok := d.Nodes[id]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	stack := append([]*Node(nil), start.Dependents...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[node.ID] {
			continue
		}
		seen[node.ID] = true
		stack = append(stack, node.Dependents...)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
