// Package aggregate 累计一次扫描中的命中总数和按地址的频次。
package aggregate

// Aggregator 归单次扫描独占，不做并发保护。
// 命中总数统计的是匹配行数，地址提取失败的行也会计入，
// 因此 Total() 恒不小于 AddressSum()。
type Aggregator struct {
	total     uint64
	addresses map[string]uint64
}

// New 创建空的聚合器。
func New() *Aggregator {
	return &Aggregator{addresses: make(map[string]uint64)}
}

// RecordHit 记录一条通过过滤并匹配成功的行。
func (a *Aggregator) RecordHit() {
	a.total++
}

// RecordAddress 为地址计数 +1，不存在时从 1 开始。
func (a *Aggregator) RecordAddress(address string) {
	a.addresses[address]++
}

// Total 返回命中总数。
func (a *Aggregator) Total() uint64 {
	return a.total
}

// Addresses 返回地址频次表的副本。
func (a *Aggregator) Addresses() map[string]uint64 {
	result := make(map[string]uint64, len(a.addresses))
	for address, count := range a.addresses {
		result[address] = count
	}
	return result
}

// AddressSum 返回全部地址计数之和。
func (a *Aggregator) AddressSum() uint64 {
	var sum uint64
	for _, count := range a.addresses {
		sum += count
	}
	return sum
}
