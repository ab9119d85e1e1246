package engine

// 会话开始时把本地集合与远程集合按 id 归并为一份权威集合。
// 远程条目先占位，本地独有的条目补入，id 冲突时保留版本时间戳更大的一方。

type syncable[T any] interface {
	*T
	EntityID() string
	SetEntityID(id string)
	VersionStamp() int64
}

// MergeReport 记录归并前后的规模，供调用方决定是否需要回写远端。
type MergeReport struct {
	RemoteCount int
	LocalCount  int
	MergedCount int
}

// WriteBackNeeded 归并结果比远程集合多出条目时需要回写，
// 保证本地新建的数据最终进入云端。
func (r MergeReport) WriteBackNeeded() bool {
	return r.MergedCount != r.RemoteCount
}

// MergeByID 归并远程与本地两份同类型集合。结果顺序：远程原序在前，
// 本地独有条目按本地原序在后，保证回写内容稳定。
func MergeByID[T any, PT syncable[T]](remote, local []T) ([]T, MergeReport) {
	report := MergeReport{RemoteCount: len(remote), LocalCount: len(local)}

	index := make(map[string]int, len(remote))
	merged := make([]T, 0, len(remote)+len(local))
	for _, item := range remote {
		id := PT(&item).EntityID()
		if id == "" {
			continue
		}
		index[id] = len(merged)
		merged = append(merged, item)
	}

	for _, item := range local {
		p := PT(&item)
		if p.EntityID() == "" {
			// 历史数据可能没有 id，补一个再参与归并
			p.SetEntityID(NewID())
		}
		id := p.EntityID()
		at, exists := index[id]
		if !exists {
			index[id] = len(merged)
			merged = append(merged, item)
			continue
		}
		existing := merged[at]
		if p.VersionStamp() > PT(&existing).VersionStamp() {
			merged[at] = item
		}
	}

	report.MergedCount = len(merged)
	return merged, report
}
