package editor

// ImageRef is a locally held image attachment. In the webview build the
// underlying resource is an object URL that is never garbage collected,
// so whoever holds the reference must release it exactly once.
type ImageRef struct {
	URL      string
	released bool
	release  func()
}

func NewImageRef(url string, release func()) *ImageRef {
	return &ImageRef{URL: url, release: release}
}

// Release frees the underlying resource. Safe to call twice.
func (r *ImageRef) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	if r.release != nil {
		r.release()
	}
}

// SetImage attaches ref to the question, first releasing whatever was
// attached before. Ownership of ref passes to the list; it is exclusive
// and non-shared.
func (l *List) SetImage(id string, ref *ImageRef, name string) {
	q := l.find(id)
	if q == nil {
		// nothing owns the ref now; drop it instead of leaking
		ref.Release()
		return
	}

	l.releaseImage(id)
	if l.images == nil {
		l.images = map[string]*ImageRef{}
	}
	l.images[id] = ref
	q.ImageURL = ref.URL
	q.ImageName = name
}

// ClearImage releases and nulls both image fields. No-op without one.
func (l *List) ClearImage(id string) {
	q := l.find(id)
	if q == nil {
		return
	}
	l.releaseImage(id)
	q.ImageURL = ""
	q.ImageName = ""
}

// ReleaseAll frees every held reference; used when the whole draft is
// discarded.
func (l *List) ReleaseAll() {
	for id := range l.images {
		l.releaseImage(id)
	}
}

func (l *List) releaseImage(id string) {
	if ref, ok := l.images[id]; ok {
		ref.Release()
		delete(l.images, id)
	}
}
