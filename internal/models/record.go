package models

const (
	// FieldCount is the number of fields in a persisted row.
	FieldCount = 7

	CurrencyPrefix = "¥"
	WeightUnit     = "kg"
	DefaultText    = "无"
	DefaultWeight  = "1.0kg"

	// TimeLayout is the yyyy-MM-dd HH:mm:ss layout used for both timestamps.
	TimeLayout = "2006-01-02 15:04:05"
)

// Record is one inventory line. Index is the row position in the store at
// read time and is not persisted.
type Record struct {
	Name       string `csv:"name" bson:"name" json:"name"`
	Price      string `csv:"price" bson:"price" json:"price"`
	Weight     string `csv:"weight" bson:"weight" json:"weight"`
	Brand      string `csv:"brand" bson:"brand" json:"brand"`
	Remark     string `csv:"remark" bson:"remark" json:"remark"`
	CreateTime string `csv:"create_time" bson:"createTime" json:"createTime"`
	UpdateTime string `csv:"update_time" bson:"updateTime" json:"updateTime"`
	Index      int    `csv:"-" bson:"index" json:"-"`
}

// Header lists the csv column names in row order.
var Header = []string{"name", "price", "weight", "brand", "remark", "create_time", "update_time"}

// FromFields builds a Record from a raw row. Rows shorter than FieldCount are
// rejected; extra trailing fields are ignored.
func FromFields(fields []string, index int) (Record, bool) {
	if len(fields) < FieldCount {
		return Record{}, false
	}
	return Record{
		Name:       fields[0],
		Price:      fields[1],
		Weight:     fields[2],
		Brand:      fields[3],
		Remark:     fields[4],
		CreateTime: fields[5],
		UpdateTime: fields[6],
		Index:      index,
	}, true
}

func (r Record) Fields() []string {
	return []string{r.Name, r.Price, r.Weight, r.Brand, r.Remark, r.CreateTime, r.UpdateTime}
}

// SameContent reports whether both records hold the same persisted fields,
// ignoring Index.
func (r Record) SameContent(other Record) bool {
	a, b := r, other
	a.Index, b.Index = 0, 0
	return a == b
}
