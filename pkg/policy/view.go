package policy

import (
	"github.com/insurekit/policyclean/pkg/io/csvio"
	"github.com/insurekit/policyclean/pkg/io/jsonlio"
	"github.com/insurekit/policyclean/pkg/io/parquetio"
	j "github.com/insurekit/policyclean/pkg/policyclean"
)

// View is a named, read-many handle over the cleaned result set. The frame
// behind it is computed once; downstream consumers query or materialize it
// without triggering recomputation.
type View struct {
	name  string
	frame *j.Frame
}

func NewView(name string, f *j.Frame) *View {
	return &View{name: name, frame: f}
}

func (v *View) Name() string    { return v.name }
func (v *View) Frame() *j.Frame { return v.frame }
func (v *View) Rows() int       { return v.frame.Rows() }

// WriteCSV materializes the view as a CSV file with headers.
func (v *View) WriteCSV(path string) error {
	return csvio.WriteAll(path, v.frame, csvio.WriterOptions{})
}

// WriteJSONL materializes the view as newline-delimited JSON.
func (v *View) WriteJSONL(path string) error {
	return jsonlio.WriteAll(path, v.frame)
}

// WriteParquet materializes the view as Parquet, the cache format for
// downstream query tooling.
func (v *View) WriteParquet(path string) error {
	return parquetio.WriteAll(path, v.frame)
}
