// Package record mantém coleções ordenadas em memória (ordem de inserção/recência).
package record

// Collection guarda itens em ordem, do mais recente para o mais antigo.
// Não é segura para uso concorrente: o dono da coleção serializa o acesso.
type Collection[T any] struct {
	items []T
	key   func(T) string
}

// New cria uma coleção vazia identificando itens por key.
func New[T any](key func(T) string) *Collection[T] {
	return &Collection[T]{key: key}
}

// Reset substitui todo o conteúdo.
func (c *Collection[T]) Reset(items []T) {
	c.items = append([]T(nil), items...)
}

// List devolve uma cópia na ordem atual.
func (c *Collection[T]) List() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len devolve a quantidade de itens.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Find busca pelo identificador.
func (c *Collection[T]) Find(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Prepend insere no topo.
func (c *Collection[T]) Prepend(item T) {
	c.items = append([]T{item}, c.items...)
}

// MoveToFront grava o item no topo, removendo a versão anterior se houver.
func (c *Collection[T]) MoveToFront(item T) {
	id := c.key(item)
	out := make([]T, 0, len(c.items)+1)
	out = append(out, item)
	for _, existing := range c.items {
		if c.key(existing) != id {
			out = append(out, existing)
		}
	}
	c.items = out
}

// Replace troca o item na mesma posição. Devolve false se não existir.
func (c *Collection[T]) Replace(item T) bool {
	i := c.index(c.key(item))
	if i < 0 {
		return false
	}
	c.items[i] = item
	return true
}

// Remove exclui pelo identificador. Devolve false se não existir.
func (c *Collection[T]) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

func (c *Collection[T]) index(id string) int {
	for i, item := range c.items {
		if c.key(item) == id {
			return i
		}
	}
	return -1
}
