package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"shopsample/internal/entity"
	"shopsample/pkg/crud"
	"shopsample/pkg/storage/postgres"
	"shopsample/pkg/storage/postgres/transaction"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const _productTable = "product"

var _productColumns = []string{
	"id",
	"created_on",
	"updated_on",
	"name",
	"description",
	"price",
	"image_url",
}

var _ crud.Repository[int64, *entity.Product] = (*ProductRepository)(nil)

// ProductRepository reads through the pool and writes through the
// transaction manager.
type ProductRepository struct {
	db        *postgres.Postgres
	txManager transaction.Manager
}

func NewProductRepository(db *postgres.Postgres, txManager transaction.Manager) *ProductRepository {
	return &ProductRepository{
		db:        db,
		txManager: txManager,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (crud.Optional[*entity.Product], error) {
	const op = "repository.product.FindByID"

	sql, args, err := r.selectProducts().
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return crud.NotFound[*entity.Product](), fmt.Errorf("%s: building query: %w", op, err)
	}

	product, err := scanProduct(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return crud.NotFound[*entity.Product](), nil
		}
		return crud.NotFound[*entity.Product](), fmt.Errorf("%s: query row: %w", op, err)
	}

	return crud.Found(product), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	const op = "repository.product.FindAll"

	sql, args, err := r.selectProducts().OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	products, err := queryProducts(ctx, r.db.Pool, sql, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// FindAllPaged returns the slice for the zero-based page ordered by id,
// together with the total row count. Both are read from one snapshot.
func (r *ProductRepository) FindAllPaged(
	ctx context.Context,
	page, size int,
) ([]*entity.Product, int, error) {
	const op = "repository.product.FindAllPaged"

	countSQL, countArgs, err := r.db.Builder.Select("COUNT(*)").From(_productTable).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: building count query: %w", op, err)
	}

	offset, reachable := pageOffset(page, size)
	sql, args, err := r.selectProducts().
		OrderBy("id").
		Limit(uint64(size)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: building query: %w", op, err)
	}

	var (
		total    int
		products []*entity.Product
	)
	err = r.txManager.ExecuteReadOnly(ctx, op, func(tx postgres.Querier) error {
		if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		if total == 0 || !reachable {
			products = []*entity.Product{}
			return nil
		}

		var err error
		products, err = queryProducts(ctx, tx, sql, args)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return products, total, nil
}

// pageOffset returns the row offset of page. An offset past the bigint range
// cannot hold rows, so reachable is false and the page is known to be empty.
func pageOffset(page, size int) (offset uint64, reachable bool) {
	if page < 0 || size <= 0 {
		return 0, page == 0
	}
	if int64(page) > math.MaxInt64/int64(size) {
		return 0, false
	}
	return uint64(page) * uint64(size), true
}

// Save inserts a product without id and updates one with id. Updating a row
// that no longer exists fails with crud.ErrDoesNotExist.
func (r *ProductRepository) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	const op = "repository.product.Save"

	if product == nil {
		return nil, fmt.Errorf("%s: nil product", op)
	}

	id, ok := product.Identifier()
	if !ok {
		return r.insert(ctx, product)
	}

	query := r.db.Builder.Update(_productTable).
		SetMap(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"updated_on":  squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	var saved *entity.Product
	err = r.txManager.ExecuteInTransaction(ctx, op, func(tx postgres.Querier) error {
		p, err := scanProduct(tx.QueryRow(ctx, sql, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product with id %d: %w", id, crud.ErrDoesNotExist)
		}
		saved = p
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ProductRepository) insert(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	const op = "repository.product.insert"

	query := r.db.Builder.Insert(_productTable).
		Columns("created_on", "name", "description", "price", "image_url").
		Values(
			squirrel.Expr("now()"),
			product.Name,
			product.Description,
			product.Price,
			product.ImageURL,
		).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: building query: %w", op, err)
	}

	var saved *entity.Product
	err = r.txManager.ExecuteInTransaction(ctx, op, func(tx postgres.Querier) error {
		p, err := scanProduct(tx.QueryRow(ctx, sql, args...))
		saved = p
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const op = "repository.product.ExistsByID"

	sql, args, err := r.db.Builder.Select("1").
		From(_productTable).
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: building query: %w", op, err)
	}

	var exists bool
	if err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: query row: %w", op, err)
	}

	return exists, nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	const op = "repository.product.DeleteByID"

	sql, args, err := r.db.Builder.Delete(_productTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: building query: %w", op, err)
	}

	err = r.txManager.ExecuteInTransaction(ctx, op, func(tx postgres.Querier) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("product with id %d: %w", id, crud.ErrDoesNotExist)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProductRepository) selectProducts() squirrel.SelectBuilder {
	return r.db.Builder.Select(_productColumns...).From(_productTable)
}

func queryProducts(ctx context.Context, q postgres.Querier, sql string, args []any) ([]*entity.Product, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows final error: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(
		&p.ID,
		&p.CreatedOn,
		&p.UpdatedOn,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func columnList() string {
	return strings.Join(_productColumns, ", ")
}
