package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps one document per template, keyed by template id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

const mongoCloseTimeout = 5 * time.Second

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

type templateDoc struct {
	ID        string           `bson:"_id"`
	Name      string           `bson:"name"`
	Size      string           `bson:"size"`
	IsDefault bool             `bson:"is_default"`
	Sections  []sectionDoc     `bson:"sections"`
	Margins   template.Margins `bson:"margins"`
	CreatedAt time.Time        `bson:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

type sectionDoc struct {
	ID     string         `bson:"id"`
	Type   string         `bson:"type"`
	X      float64        `bson:"x"`
	Y      float64        `bson:"y"`
	Width  float64        `bson:"width"`
	Height float64        `bson:"height"`
	Style  template.Style `bson:"style"`
	ZIndex int            `bson:"z_index"`
}

// toDoc stores section types and print sizes by name so documents stay
// readable from the mongo shell.
func toDoc(t template.Template) templateDoc {
	doc := templateDoc{
		ID:        t.ID,
		Name:      t.Name,
		Size:      t.Size.Name,
		IsDefault: t.IsDefault,
		Sections:  make([]sectionDoc, len(t.Sections)),
		Margins:   t.Margins,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for i, s := range t.Sections {
		doc.Sections[i] = sectionDoc{
			ID:     s.ID,
			Type:   s.Type.String(),
			X:      s.Position.X,
			Y:      s.Position.Y,
			Width:  s.Size.Width,
			Height: s.Size.Height,
			Style:  s.Style,
			ZIndex: s.ZIndex,
		}
	}
	return doc
}

func fromDoc(doc templateDoc) (template.Template, error) {
	size, err := template.ParseSize(doc.Size)
	if err != nil {
		return template.Template{}, err
	}
	t := template.Template{
		ID:        doc.ID,
		Name:      doc.Name,
		Size:      size,
		IsDefault: doc.IsDefault,
		Sections:  make([]template.Section, len(doc.Sections)),
		Margins:   doc.Margins,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for i, sd := range doc.Sections {
		typ, err := template.ParseSectionType(sd.Type)
		if err != nil {
			return template.Template{}, err
		}
		t.Sections[i] = template.Section{
			ID:       sd.ID,
			Type:     typ,
			Position: template.Position{X: sd.X, Y: sd.Y},
			Size:     template.Dimensions{Width: sd.Width, Height: sd.Height},
			Style:    sd.Style,
			ZIndex:   sd.ZIndex,
		}
	}
	return t, nil
}

func (s *MongoStore) get(ctx context.Context, id string) (template.Template, error) {
	var doc templateDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return template.Template{}, notFound(id)
	}
	if err != nil {
		return template.Template{}, errors.Wrap(errors.ErrCodeUnavailable, err, "get template %s", id)
	}
	t, err := fromDoc(doc)
	if err != nil {
		return template.Template{}, errors.Wrap(errors.ErrCodeInternal, err, "decode template %s", id)
	}
	return t, nil
}

func (s *MongoStore) Create(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	if _, err := s.coll.InsertOne(ctx, toDoc(t)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return conflict(t.ID)
		}
		return errors.Wrap(errors.ErrCodeUnavailable, err, "create template %s", t.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (template.Template, error) {
	return s.get(ctx, id)
}

func (s *MongoStore) Update(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	stored, err := s.get(ctx, t.ID)
	if err != nil {
		return err
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, toDoc(prepareUpdate(stored, t)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "update template %s", t.ID)
	}
	if res.MatchedCount == 0 {
		return notFound(t.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	t, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkDelete(t); err != nil {
		return err
	}
	// The filter repeats the guard so a concurrent promotion cannot slip through.
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "is_default": false})
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete template %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// List skips documents that no longer decode into a valid template.
func (s *MongoStore) List(ctx context.Context) ([]template.Template, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list templates")
	}
	var docs []templateDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list templates")
	}

	out := make([]template.Template, 0, len(docs))
	for _, doc := range docs {
		t, err := fromDoc(doc)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sortTemplates(out)
	return out, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
