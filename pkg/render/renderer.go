package render

// Fragment carries the five values substituted into a modal skeleton. It is
// built once per directive execution and never cached.
type Fragment struct {
	ID          string
	Title       string
	Body        string
	CloseButton bool
	HeaderClass string
}

// Skeleton turns a Fragment into the final modal markup. Implementations must
// not escape the Fragment values; escaping decisions are made upstream.
type Skeleton interface {
	Name() string
	Render(fragment Fragment) (string, error)
}
