package id

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// Only the first call has an effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new time-ordered int64 document ID.
func New() int64 {
	return node.Generate().Int64()
}

// Parse converts the decimal wire form of an ID back to int64.
// Zero and negative values are rejected since New never produces them.
func Parse(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing id %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("parsing id %q: must be positive", s)
	}
	return v, nil
}

// String formats an ID for the wire and for document keys.
func String(v int64) string {
	return strconv.FormatInt(v, 10)
}
