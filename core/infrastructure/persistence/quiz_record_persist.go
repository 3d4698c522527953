package persistence

import (
	"chinitsu/common/database"
	"chinitsu/common/log"
	"chinitsu/common/utils"
	"chinitsu/core/domain/entity"
	"chinitsu/core/domain/repository"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	quizRecordCollection = "quiz_records"
	// TTL 索引过期时间：180 天
	recordTTLSeconds = 180 * 24 * 3600
	// 异步写入缓冲区大小
	asyncBufferSize = 1000
)

type QuizRecordRepository struct {
	mongo         *database.MongoManager
	asyncChan     chan *entity.QuizRecord
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	once          sync.Once
	closed        bool
	mu            sync.RWMutex
}

// NewQuizRecordRepository 创建答题记录仓储，写入按 batchSize 条或 flushInterval 攒批
func NewQuizRecordRepository(mongo *database.MongoManager, batchSize int, flushInterval time.Duration) *QuizRecordRepository {
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 500 * time.Millisecond
	}
	repo := &QuizRecordRepository{
		mongo:         mongo,
		asyncChan:     make(chan *entity.QuizRecord, asyncBufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}

	repo.initIndexes()

	repo.wg.Add(1)
	go repo.asyncWriteLoop()

	return repo
}

// initIndexes 初始化索引（包括TTL索引）
func (r *QuizRecordRepository) initIndexes() {
	collection := r.mongo.Db.Collection(quizRecordCollection)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(recordTTLSeconds),
		},
		// 用户ID + 作答时间（用于历史记录分页）
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "answered_at", Value: -1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("创建答题记录索引失败: %v", err)
	} else {
		log.Info("答题记录索引创建成功")
	}
}

// SaveRecords 批量保存（同步）
func (r *QuizRecordRepository) SaveRecords(ctx context.Context, records []*entity.QuizRecord) error {
	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		docs = append(docs, r.recordToBson(record))
	}
	if len(docs) == 0 {
		return nil
	}

	collection := r.mongo.Db.Collection(quizRecordCollection)
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Error("批量保存答题记录失败: %v", err)
		return repository.ErrStorage
	}
	log.Debug("批量保存答题记录成功: count=%d", len(docs))
	return nil
}

// SaveRecordAsync 异步保存（非阻塞）
func (r *QuizRecordRepository) SaveRecordAsync(record *entity.QuizRecord) {
	if record == nil {
		return
	}

	// 读锁覆盖发送，Close 拿写锁后才关闭通道
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		log.Warn("答题记录仓储已关闭，无法异步写入")
		return
	}

	select {
	case r.asyncChan <- record:
	default:
		log.Warn("答题记录异步通道已满，丢弃记录: userID=%s, questionID=%s", record.UserID, record.QuestionID)
	}
}

// asyncWriteLoop 攒批写入，通道关闭时写完剩余批次
func (r *QuizRecordRepository) asyncWriteLoop() {
	defer r.wg.Done()

	batch := make([]*entity.QuizRecord, 0, r.batchSize)
	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case record, ok := <-r.asyncChan:
			if !ok {
				r.flushBatch(batch)
				return
			}
			batch = append(batch, record)
			if len(batch) >= r.batchSize {
				r.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (r *QuizRecordRepository) flushBatch(records []*entity.QuizRecord) {
	if len(records) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r.SaveRecords(ctx, records); err != nil {
		log.Error("异步批量写入答题记录失败: %v, count=%d", err, len(records))
	}
}

// FindByUser 按作答时间倒序分页
func (r *QuizRecordRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.QuizRecord, error) {
	collection := r.mongo.Db.Collection(quizRecordCollection)

	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.M{"answered_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		log.Warn("查询答题记录失败: %v", err)
		return nil, repository.ErrStorage
	}
	defer cursor.Close(ctx)

	result := make([]*entity.QuizRecord, 0, limit)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		result = append(result, r.docToRecord(doc))
	}
	return result, nil
}

// Close 写完缓冲区后关闭
func (r *QuizRecordRepository) Close() error {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.asyncChan)
		r.mu.Unlock()

		r.wg.Wait()
		log.Info("答题记录仓储已关闭")
	})
	return nil
}

// ==================== 转换辅助方法 ====================

func (r *QuizRecordRepository) recordToBson(record *entity.QuizRecord) bson.M {
	return bson.M{
		"_id":         record.ID,
		"question_id": record.QuestionID,
		"user_id":     record.UserID,
		"hand":        record.Hand,
		"difficulty":  record.Difficulty,
		"waits":       record.Waits,
		"answer":      record.Answer,
		"correct":     record.Correct,
		"timed_out":   record.TimedOut,
		"score":       record.Score,
		"elapsed_ms":  record.ElapsedMs,
		"answered_at": record.AnsweredAt,
		"created_at":  record.CreatedAt,
	}
}

func (r *QuizRecordRepository) docToRecord(doc bson.M) *entity.QuizRecord {
	record := &entity.QuizRecord{
		QuestionID: utils.ToString(doc["question_id"]),
		UserID:     utils.ToString(doc["user_id"]),
		Hand:       utils.ToString(doc["hand"]),
		Difficulty: utils.ToString(doc["difficulty"]),
		Waits:      utils.ToIntSlice(doc["waits"]),
		Answer:     utils.ToIntSlice(doc["answer"]),
		Score:      utils.ToInt(doc["score"]),
		ElapsedMs:  int64(utils.ToInt(doc["elapsed_ms"])),
		AnsweredAt: utils.ToTime(doc["answered_at"]),
		CreatedAt:  utils.ToTime(doc["created_at"]),
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		record.ID = id
	}
	record.Correct, _ = doc["correct"].(bool)
	record.TimedOut, _ = doc["timed_out"].(bool)
	return record
}
