package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"fintrack/models"
)

// TransactionGenerator 模拟银行导入的交易生成器。
// 生成的记录需满足：source 为 imported、类别取自该用户已有类别、
// 日期落在近期历史窗口内。
type TransactionGenerator interface {
	Generate(user models.User) []models.Transaction
}

// State 全量状态快照，即持久化文件的内容布局
type State struct {
	Users         []models.User         `json:"users"`
	Receipts      []models.Receipt      `json:"receipts"`
	Transactions  []models.Transaction  `json:"transactions"`
	Budgets       []models.Budget       `json:"budgets"`
	AnalyticsLogs []models.AnalyticsLog `json:"analytics_logs"`
	CurrentUserID *string               `json:"current_user_id,omitempty"`
}

// Store 理财数据存储
//
// 持有全部实体，所有变更必须经由具名操作完成。每次变更成功后
// 同步写出一份完整快照；启动时从快照恢复。操作经互斥锁串行化，
// 每个操作要么完整生效要么完全不生效（校验先于任何修改）。
type Store struct {
	mu    sync.Mutex
	path  string
	gen   TransactionGenerator
	state State
}

// Open 打开存储：从快照文件恢复状态，文件不存在则以空状态启动。
// 快照损坏（无法反序列化）时返回错误，不做修复或迁移。
func Open(path string, gen TransactionGenerator) (*Store, error) {
	s := &Store{path: path, gen: gen}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取快照失败: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("快照解析失败: %w", err)
	}
	return s, nil
}

// save 写出全量快照。先写临时文件再改名，避免写到一半的快照。
// 调用方必须已持有 s.mu。写失败不回滚内存状态，仅记录告警，
// 与存储后端不可用时降级为纯内存运行的约定一致。
func (s *Store) save() {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		log.Printf("警告: 快照序列化失败: %v", err)
		return
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("警告: 创建快照目录失败: %v", err)
		return
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("警告: 写入快照失败: %v", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		log.Printf("警告: 替换快照失败: %v", err)
	}
}

// Snapshot 返回当前全量状态的深拷贝，供统计与测试使用
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Users:         make([]models.User, len(s.state.Users)),
		Receipts:      append([]models.Receipt(nil), s.state.Receipts...),
		Transactions:  append([]models.Transaction(nil), s.state.Transactions...),
		Budgets:       make([]models.Budget, len(s.state.Budgets)),
		AnalyticsLogs: append([]models.AnalyticsLog(nil), s.state.AnalyticsLogs...),
	}
	for i, u := range s.state.Users {
		st.Users[i] = cloneUser(u)
	}
	for i, b := range s.state.Budgets {
		st.Budgets[i] = cloneBudget(b)
	}
	if s.state.CurrentUserID != nil {
		id := *s.state.CurrentUserID
		st.CurrentUserID = &id
	}
	return st
}

// findUser 按 ID 查找用户，返回指向内部状态的指针。须持有 s.mu。
func (s *Store) findUser(id string) *models.User {
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			return &s.state.Users[i]
		}
	}
	return nil
}

// findUserByEmail 按归一化邮箱查找用户。须持有 s.mu。
func (s *Store) findUserByEmail(email string) *models.User {
	norm := normalizeEmail(email)
	for i := range s.state.Users {
		if s.state.Users[i].Email == norm {
			return &s.state.Users[i]
		}
	}
	return nil
}

// User 按 ID 查询用户（副本）
func (s *Store) User(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.findUser(id); u != nil {
		return cloneUser(*u), true
	}
	return models.User{}, false
}

func cloneUser(u models.User) models.User {
	u.Categories = append([]string(nil), u.Categories...)
	if u.Subscription.RenewsAt != nil {
		t := *u.Subscription.RenewsAt
		u.Subscription.RenewsAt = &t
	}
	return u
}

func cloneBudget(b models.Budget) models.Budget {
	if b.Rollover != nil {
		v := *b.Rollover
		b.Rollover = &v
	}
	if b.AlertThreshold != nil {
		v := *b.AlertThreshold
		b.AlertThreshold = &v
	}
	return b
}
