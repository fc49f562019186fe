package services

import (
	"Vaulted/internal/models"
	"Vaulted/internal/repository"
	"fmt"
	"strings"
)

// ArchiveEntry pairs a storage key with the slash-joined path the file gets
// inside an exported archive.
type ArchiveEntry struct {
	StorageKey  string
	ArchivePath string
}

// WalkerService resolves a folder id into the ordered list of archive
// entries for every file transitively contained in it. Sub-folders are not
// represented as entries; only files produce output.
type WalkerService interface {
	ListArchiveEntries(folderID uint) ([]ArchiveEntry, error)
}

type walkerServiceImpl struct {
	nodeRepo repository.NodeRepository
}

func NewWalkerService(nodeRepo repository.NodeRepository) WalkerService {
	return &walkerServiceImpl{nodeRepo: nodeRepo}
}

type walkFrame struct {
	node   models.Node
	prefix string
}

// ListArchiveEntries walks the tree depth-first with an explicit stack, so
// tree depth never translates into call-stack depth.
func (s *walkerServiceImpl) ListArchiveEntries(folderID uint) ([]ArchiveEntry, error) {
	children, err := s.nodeRepo.FindChildren(&folderID)
	if err != nil {
		return nil, err
	}

	stack := make([]walkFrame, 0, len(children))
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{node: children[i]})
	}

	var entries []ArchiveEntry
	seen := make(map[string]int)

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.node.IsFolder {
			grandchildren, err := s.nodeRepo.FindChildren(&frame.node.ID)
			if err != nil {
				return nil, err
			}
			prefix := frame.prefix + frame.node.Name + "/"
			for i := len(grandchildren) - 1; i >= 0; i-- {
				stack = append(stack, walkFrame{node: grandchildren[i], prefix: prefix})
			}
			continue
		}

		if frame.node.StorageKey == "" {
			continue
		}
		entries = append(entries, ArchiveEntry{
			StorageKey:  frame.node.StorageKey,
			ArchivePath: UniqueArchivePath(seen, frame.prefix+frame.node.Name),
		})
	}
	return entries, nil
}

// UniqueArchivePath disambiguates archive paths that legacy data may
// duplicate, by inserting a numeric suffix before the extension.
func UniqueArchivePath(seen map[string]int, path string) string {
	n, ok := seen[path]
	seen[path] = n + 1
	if !ok {
		return path
	}

	base, ext := path, ""
	if dot := strings.LastIndex(path, "."); dot > strings.LastIndex(path, "/") {
		base, ext = path[:dot], path[dot:]
	}
	for {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = 1
			return candidate
		}
		n++
	}
}
