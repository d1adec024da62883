package domain

// MaterialType values are the labels stored in loans.material_type.
type MaterialType string

const (
	MaterialBook     MaterialType = "Libro"
	MaterialMagazine MaterialType = "Revista"
	MaterialVideo    MaterialType = "Video"
)

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialBook, MaterialMagazine, MaterialVideo:
		return true
	default:
		return false
	}
}

// MaterialVisitor is implemented by anything that aggregates over the catalog.
type MaterialVisitor interface {
	VisitBook(b Book)
	VisitMagazine(m Magazine)
	VisitVideo(v Video)
}

type Material interface {
	Accept(v MaterialVisitor)
}

type Book struct {
	ID             int64   `db:"id"`
	Title          string  `db:"title"`
	AuthorOrEditor *string `db:"author_or_editor"`
	ISBN           *string `db:"isbn"`
	Pages          int     `db:"pages"`
}

func (b Book) Accept(v MaterialVisitor) { v.VisitBook(b) }

type Magazine struct {
	ID             int64   `db:"id"`
	Title          string  `db:"title"`
	AuthorOrEditor *string `db:"author_or_editor"`
	IssueNumber    int     `db:"issue_number"`
}

func (m Magazine) Accept(v MaterialVisitor) { v.VisitMagazine(m) }

type Video struct {
	ID              int64   `db:"id"`
	Title           string  `db:"title"`
	AuthorOrEditor  *string `db:"author_or_editor"`
	DurationMinutes int     `db:"duration_minutes"`
	Format          *string `db:"format"`
}

func (v Video) Accept(vis MaterialVisitor) { vis.VisitVideo(v) }
