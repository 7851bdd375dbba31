package articles

const DefaultPageSize = 10

type Config struct {
	// PageSize is the number of articles per listing page.
	PageSize int
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}

	return c.PageSize
}
