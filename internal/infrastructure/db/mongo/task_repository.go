package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexusflow/nexusflow-api/internal/core/domain"
)

const tasksCollection = "tasks"

// TaskRepository persists tasks with embedded assignee/reporter references.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type taskDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description,omitempty"`
	ProjectID      string             `bson:"project_id"`
	Status         string             `bson:"status"`
	Priority       string             `bson:"priority"`
	DueDate        *time.Time         `bson:"due_date,omitempty"`
	EstimatedHours int                `bson:"estimated_hours,omitempty"`
	ActualHours    int                `bson:"actual_hours,omitempty"`
	Assignee       *memberDoc         `bson:"assignee,omitempty"`
	Reporter       memberDoc          `bson:"reporter"`
	Tags           []string           `bson:"tags,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	doc := taskDoc{
		Title:          t.Title,
		Description:    t.Description,
		ProjectID:      t.ProjectID,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Reporter:       toMemberDoc(t.Reporter),
		Tags:           t.Tags,
		CreatedAt:      t.CreatedAt.Unix(),
		UpdatedAt:      t.UpdatedAt.Unix(),
	}
	if t.Assignee != nil {
		assignee := toMemberDoc(*t.Assignee)
		doc.Assignee = &assignee
	}
	return doc
}

func (d taskDoc) toDomain() *domain.Task {
	task := &domain.Task{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Description:    d.Description,
		ProjectID:      d.ProjectID,
		Status:         domain.TaskStatus(d.Status),
		Priority:       domain.Priority(d.Priority),
		DueDate:        d.DueDate,
		EstimatedHours: d.EstimatedHours,
		ActualHours:    d.ActualHours,
		Reporter:       d.Reporter.toDomain(),
		Tags:           d.Tags,
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
	if d.Assignee != nil {
		assignee := d.Assignee.toDomain()
		task.Assignee = &assignee
	}
	return task
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	res, err := r.coll.InsertOne(ctx, toTaskDoc(task))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var doc taskDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// ListForUser returns tasks the user either reported or is assigned to.
func (r *TaskRepository) ListForUser(ctx context.Context, userID string) ([]domain.Task, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"assignee.id": userID},
		bson.M{"reporter.id": userID},
	}}
	return r.findAll(ctx, filter)
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.findAll(ctx, bson.M{"project_id": projectID})
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toTaskDoc(task))
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count tasks by status: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []domain.Task
	for cur.Next(ctx) {
		var doc taskDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, *doc.toDomain())
	}
	return tasks, cur.Err()
}
