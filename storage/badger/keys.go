package badger

import "fmt"

// Key prefixes for different data types
const (
	resultEntityPrefix = "resent"
	tableMarkerPrefix  = "restab"
)

// makeEntityKey generates a key for a result entity.
// Format: prefix:table:partitionKey:rowKey
//
// Partition keys are calendar dates and row keys are zero-padded indices, so
// lexicographic key order matches (PartitionKey, RowKey) order within a table.
func makeEntityKey(table, partitionKey, rowKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", resultEntityPrefix, table, partitionKey, rowKey))
}

// makeTableEntityPrefix generates the scan prefix covering every entity of a table.
func makeTableEntityPrefix(table string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", resultEntityPrefix, table))
}

// makePartitionPrefix generates the scan prefix covering one partition of a table.
func makePartitionPrefix(table, partitionKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", resultEntityPrefix, table, partitionKey))
}

// makeTableMarkerKey generates the key marking that a table has been created.
func makeTableMarkerKey(table string) []byte {
	return []byte(fmt.Sprintf("%s:%s", tableMarkerPrefix, table))
}
