package rosterdomain

// MaxMutationsPerCommit bounds how many entity mutations a single commit
// may carry. Bulk operations split their work into chunks under this limit.
const MaxMutationsPerCommit = 400

// Chunk packs a sequence of transactions into batches of at most limit
// mutations each. Transactions are never split: all mutations from one
// transaction land in the same batch, so a single entity's change can
// never straddle a commit boundary. A transaction larger than the limit
// becomes its own batch.
func Chunk(txs []*Transaction, limit int) []*Transaction {
	if limit <= 0 {
		limit = MaxMutationsPerCommit
	}
	var batches []*Transaction
	current := &Transaction{}
	for _, tx := range txs {
		if tx == nil || tx.Empty() {
			continue
		}
		if !current.Empty() && current.MutationCount()+tx.MutationCount() > limit {
			batches = append(batches, current)
			current = &Transaction{}
		}
		current.Mutations = append(current.Mutations, tx.Mutations...)
	}
	if !current.Empty() {
		batches = append(batches, current)
	}
	return batches
}
