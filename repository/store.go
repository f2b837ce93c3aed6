package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerniceZTT/crm_local/utils"

	_ "modernc.org/sqlite" // 纯Go的sqlite驱动，无需cgo
)

const (
	// 存储槽名，末尾的版本号是唯一的迁移机制：
	// 记录结构变更时递增版本号，旧数据即被废弃。
	CustomersSlot     = "crm_customers_v3"
	OpportunitiesSlot = "crm_opportunities_v3"
)

// SlotStore 本地键值存储
//
// 每个槽位存放一个完整集合的JSON数组，每次写入整体覆盖。
// 底层是单文件sqlite，单写者模型下无需额外的并发控制。
type SlotStore struct {
	db *sql.DB
}

// NewSlotStore 打开（必要时创建）本地存储文件
func NewSlotStore(path string) (*SlotStore, error) {
	if path == "" {
		path = "crm_local.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开sqlite失败: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("创建slots表失败: %w", err)
	}

	utils.Logger.Info().Str("path", path).Msg("本地存储已就绪")
	return &SlotStore{db: db}, nil
}

// Load 读取槽位内容，槽位不存在时返回 false
func (s *SlotStore) Load(key string) ([]byte, bool) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM slots WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			utils.LogError(err, map[string]interface{}{"slot": key}, "读取存储槽失败")
		}
		return nil, false
	}
	return payload, true
}

// Save 整体覆盖写入槽位内容
func (s *SlotStore) Save(key string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("写入存储槽失败: %w", err)
	}
	utils.LogStoreOperation("save", key, len(payload))
	return nil
}

// Close 关闭底层存储
func (s *SlotStore) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			utils.LogError(err, nil, "关闭本地存储失败")
		}
	}
}

// SlotStatus 返回各槽位的记录数，用于状态检查接口
func (s *SlotStore) SlotStatus() map[string]interface{} {
	result := make(map[string]interface{})
	for _, key := range []string{CustomersSlot, OpportunitiesSlot} {
		raw, ok := s.Load(key)
		if !ok {
			result[key] = map[string]interface{}{"present": false, "count": 0}
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			result[key] = map[string]interface{}{"present": true, "count": 0, "error": err.Error()}
			continue
		}
		result[key] = map[string]interface{}{"present": true, "count": len(items)}
	}
	return result
}

// LoadCollection 读取并反序列化一个集合
//
// 槽位不存在或内容不是合法JSON时返回 false，调用方按"无数据"处理，
// 反序列化失败只记日志，不向上传播。
func LoadCollection[T any](s *SlotStore, key string) ([]T, bool) {
	raw, ok := s.Load(key)
	if !ok {
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		utils.LogError(err, map[string]interface{}{"slot": key}, "存储槽内容损坏，按空数据处理")
		return nil, false
	}
	return items, true
}

// SaveCollection 序列化并整体写入一个集合
func SaveCollection[T any](s *SlotStore, key string, items []T) {
	if items == nil {
		// 空集合持久化为 []，而不是 null
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"slot": key}, "序列化集合失败")
		return
	}
	if err := s.Save(key, payload); err != nil {
		utils.LogError(err, map[string]interface{}{"slot": key}, "持久化集合失败")
	}
}
