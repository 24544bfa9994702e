package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// Must be called once at process start before New.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a time-ordered int64 ID. Used for request correlation:
// every HTTP request gets one, surfaced as X-Request-Id and in log fields.
func New() int64 {
	return node.Generate().Int64()
}
