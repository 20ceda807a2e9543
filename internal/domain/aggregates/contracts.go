package aggregates

// TxOwnership says who opens the write transaction around an aggregate call.
type TxOwnership string

const (
	TxOwnedByAggregate TxOwnership = "aggregate"
	TxOwnedByCaller    TxOwnership = "caller"
)

// Contract is the description an aggregate reports about itself.
type Contract struct {
	Name        string
	TxOwnership TxOwnership
	// Invariants are the rules the aggregate keeps within one transaction.
	Invariants []string
}

type Aggregate interface {
	Contract() Contract
}

func (c Contract) OwnsTx() bool { return c.TxOwnership == TxOwnedByAggregate }
