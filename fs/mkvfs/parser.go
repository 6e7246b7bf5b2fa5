package mkvfs

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/majiru/inodefs/pkg/fsutil"
	"github.com/remko/go-mkvparse"
)

type parseError string

func (p parseError) Error() string {
	return "mkvfs.TreeParser: " + string(p)
}

//element files are never writable
const elementPerm = 0444

//TreeParser builds a directory per master element and a file per leaf.
type TreeParser struct {
	Root *fsutil.Dir
	//open master elements, indexed by level
	stack []*fsutil.Dir
}

func NewTreeParser(root *fsutil.Dir) *TreeParser {
	if root == nil {
		root = fsutil.CreateDir("/")
	}
	return &TreeParser{Root: root}
}

func (p *TreeParser) parent(info mkvparse.ElementInfo) (*fsutil.Dir, error) {
	if info.Level == 0 {
		return nil, parseError("Orphaned element")
	}
	if info.Level > len(p.stack) {
		return nil, parseError("Element below a skipped master")
	}
	return p.stack[info.Level-1], nil
}

func (p *TreeParser) HandleMasterBegin(id mkvparse.ElementID, info mkvparse.ElementInfo) (bool, error) {
	switch id {
	case mkvparse.CuesElement, mkvparse.ClusterElement:
		return false, nil
	}
	newdir := fsutil.CreateDir(mkvparse.NameForElementID(id))
	if info.Level == 0 {
		p.Root.Append(newdir)
	} else {
		parent, err := p.parent(info)
		if err != nil {
			return false, err
		}
		parent.Append(newdir)
	}
	if info.Level < len(p.stack) {
		p.stack = p.stack[:info.Level]
	}
	p.stack = append(p.stack, newdir)
	return true, nil
}

func (p *TreeParser) HandleMasterEnd(id mkvparse.ElementID, info mkvparse.ElementInfo) error {
	return nil
}

func (p *TreeParser) leaf(id mkvparse.ElementID, info mkvparse.ElementInfo, value []byte) error {
	parent, err := p.parent(info)
	if err != nil {
		return err
	}
	parent.Append(fsutil.CreateFile(value, elementPerm, mkvparse.NameForElementID(id)))
	return nil
}

//number stores a numeric element as a directory holding its decimal
//form in "str" and its big endian encoding in "raw".
func (p *TreeParser) number(id mkvparse.ElementID, info mkvparse.ElementInfo, str string, raw uint64) error {
	parent, err := p.parent(info)
	if err != nil {
		return err
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, raw)
	newdir := fsutil.CreateDir(mkvparse.NameForElementID(id),
		fsutil.CreateFile([]byte(str), elementPerm, "str"),
		fsutil.CreateFile(b, elementPerm, "raw"))
	parent.Append(newdir)
	return nil
}

func (p *TreeParser) HandleString(id mkvparse.ElementID, value string, info mkvparse.ElementInfo) error {
	return p.leaf(id, info, []byte(value))
}

func (p *TreeParser) HandleInteger(id mkvparse.ElementID, value int64, info mkvparse.ElementInfo) error {
	return p.number(id, info, strconv.FormatInt(value, 10), uint64(value))
}

func (p *TreeParser) HandleFloat(id mkvparse.ElementID, value float64, info mkvparse.ElementInfo) error {
	return p.number(id, info, strconv.FormatFloat(value, 'E', -1, 64), math.Float64bits(value))
}

func (p *TreeParser) HandleDate(id mkvparse.ElementID, value time.Time, info mkvparse.ElementInfo) error {
	return p.leaf(id, info, []byte(value.String()))
}

func (p *TreeParser) HandleBinary(id mkvparse.ElementID, value []byte, info mkvparse.ElementInfo) error {
	return p.leaf(id, info, value)
}
