package icm

// HeadsUpEquity is the closed-form two-player case. Each player takes first
// place with probability equal to their chip share, so equity is a straight
// blend of the top two payouts. It matches the general recursion for n=2
// within floating tolerance and exists purely to skip the recursion when
// two players remain.
func HeadsUpEquity(stacks, payouts [2]float64) [2]float64 {
	total := stacks[0] + stacks[1]
	if total <= 0 {
		return [2]float64{}
	}
	p1Win := stacks[0] / total
	p2Win := stacks[1] / total
	return [2]float64{
		p1Win*payouts[0] + p2Win*payouts[1],
		p2Win*payouts[0] + p1Win*payouts[1],
	}
}
