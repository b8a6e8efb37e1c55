package importer

// Reader turns an uploaded workbook buffer into raw sheet rows. The first
// row is the header row; every following row is a data row.
type Reader interface {
	Read(data []byte) ([][]string, error)
}
