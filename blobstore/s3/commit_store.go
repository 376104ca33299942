package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/colorquant/blobstore"
)

// DDBClient is the subset of the DynamoDB API the commit store depends on.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentPublish is returned when another writer published a codebook
// version concurrently.
var ErrConcurrentPublish = errors.New("concurrent codebook publish detected")

// CommitStore couples an S3 blob store with a DynamoDB commit log so that
// publishing a new codebook version is atomic. S3 alone has no
// compare-and-swap; the DynamoDB conditional write supplies it.
//
// Codebook blobs are written to S3 under their content name; Publish then
// records the blob name under the next version number. Readers resolve
// Current to find the latest published codebook.
//
// Table schema:
//   - Partition key: base_uri (string) - the s3://bucket/prefix identity
//   - Sort key: version (number) - monotonically increasing version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name colorquant-codebooks \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	*Store
	ddbClient DDBClient
	tableName string
	baseURI   string
}

// NewCommitStore creates an S3+DynamoDB commit store. baseURI should be in
// "s3://bucket/prefix" form; it is used as the partition key.
func NewCommitStore(store *Store, ddbClient DDBClient, tableName, baseURI string) *CommitStore {
	return &CommitStore{
		Store:     store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   baseURI,
	}
}

// Publish atomically records blobName as the next codebook version.
// Returns the version number assigned, or ErrConcurrentPublish if another
// writer won the race (retry after re-resolving Current).
func (s *CommitStore) Publish(ctx context.Context, blobName string) (uint64, error) {
	current, _, err := s.latest(ctx)
	if err != nil {
		return 0, err
	}

	next := current + 1

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: s.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"codebook_path": &types.AttributeValueMemberS{Value: blobName},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentPublish
		}
		return 0, fmt.Errorf("commit codebook version: %w", err)
	}

	return next, nil
}

// Current resolves the most recently published codebook blob name and its
// version. Returns blobstore.ErrNotFound if nothing has been published.
func (s *CommitStore) Current(ctx context.Context) (string, uint64, error) {
	version, name, err := s.latest(ctx)
	if err != nil {
		return "", 0, err
	}
	if version == 0 {
		return "", 0, blobstore.ErrNotFound
	}
	return name, version, nil
}

// latest queries DynamoDB for the highest committed version.
func (s *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // descending, newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commit log: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in commit log")
	}
	pathAttr, ok := item["codebook_path"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid codebook_path attribute in commit log")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse version: %w", err)
	}

	return version, pathAttr.Value, nil
}
