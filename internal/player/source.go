package player

// Source is the media resource a controller plays. It is immutable.
type Source struct {
	uri string
}

// NewSource creates a source for uri, either a file:// URI or a bare path.
func NewSource(uri string) Source {
	return Source{uri: uri}
}

// URI returns the reference the source was created with.
func (s Source) URI() string {
	return s.uri
}

func (s Source) String() string {
	return s.uri
}
